package hrfco

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 15, 14, 30, 0, 0, time.UTC)

func TestNormalizeRangeAbsoluteForms(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		granularity Granularity
		wantStart   string
		wantEnd     string
	}{
		{
			name:  "bare dates at 1H pad end to 23h",
			start: "20240701", end: "20240702",
			granularity: T1H,
			wantStart:   "2024070100", wantEnd: "2024070223",
		},
		{
			name:  "separator forms are stripped",
			start: "2024-07-01", end: "2024/07/02",
			granularity: T1H,
			wantStart:   "2024070100", wantEnd: "2024070223",
		},
		{
			name:  "bare dates at 10M pad end to 23:59",
			start: "20240701", end: "20240702",
			granularity: T10M,
			wantStart:   "202407010000", wantEnd: "202407022359",
		},
		{
			name:  "daily keeps 8 digits",
			start: "20240601", end: "20240615",
			granularity: T1D,
			wantStart:   "20240601", wantEnd: "20240615",
		},
		{
			name:  "explicit hours survive at 1H",
			start: "2024070106", end: "2024070218",
			granularity: T1H,
			wantStart:   "2024070106", wantEnd: "2024070218",
		},
		{
			name:  "14-digit input drops seconds",
			start: "20240701060000", end: "20240702180000",
			granularity: T10M,
			wantStart:   "202407010600", wantEnd: "202407021800",
		},
		{
			name:  "inverted range is swapped",
			start: "20240702", end: "20240701",
			granularity: T1H,
			wantStart:   "2024070100", wantEnd: "2024070223",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := NormalizeRange(tt.start, tt.end, tt.granularity, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, rng.Start)
			assert.Equal(t, tt.wantEnd, rng.End)
		})
	}
}

func TestNormalizeRangeRelativeForms(t *testing.T) {
	rng, err := NormalizeRange("yesterday", "today", T1H, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024071400", rng.Start)
	assert.Equal(t, "2024071523", rng.End)

	rng, err = NormalizeRange("3 days ago", "today", T1D, testNow)
	require.NoError(t, err)
	assert.Equal(t, "20240712", rng.Start)
	assert.Equal(t, "20240715", rng.End)

	// underscore form
	rng, err = NormalizeRange("2_days_ago", "today", T1D, testNow)
	require.NoError(t, err)
	assert.Equal(t, "20240713", rng.Start)

	rng, err = NormalizeRange("1 month ago", "today", T1D, testNow)
	require.NoError(t, err)
	assert.Equal(t, "20240615", rng.Start)
}

func TestNormalizeRangeDefaults(t *testing.T) {
	// both endpoints omitted: default window ending now
	rng, err := NormalizeRange("", "", T1H, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024071314", rng.Start) // 48h before now
	assert.Equal(t, "2024071514", rng.End)

	rng, err = NormalizeRange("", "", T10M, testNow)
	require.NoError(t, err)
	assert.Equal(t, "202407141430", rng.Start) // 24h before now
	assert.Equal(t, "202407151430", rng.End)

	// only start: end defaults to now
	rng, err = NormalizeRange("20240714", "", T1H, testNow)
	require.NoError(t, err)
	assert.Equal(t, "2024071400", rng.Start)
	assert.Equal(t, "2024071514", rng.End)
}

func TestNormalizeRangeSpanLimits(t *testing.T) {
	_, err := NormalizeRange("20240101", "20240301", T10M, testNow)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// 366 days is fine at 1D
	_, err = NormalizeRange("20230715", "20240714", T1D, testNow)
	require.NoError(t, err)
}

func TestNormalizeRangeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"not-a-date", "2024", "99999999999999999", "next week"} {
		_, err := NormalizeRange(input, "today", T1H, testNow)
		require.Error(t, err, "input %q", input)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("10m")
	require.NoError(t, err)
	assert.Equal(t, T10M, g)

	g, err = ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, T1H, g)

	_, err = ParseGranularity("5M")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("bo")
	require.NoError(t, err)
	assert.Equal(t, Weir, cat)
	assert.Equal(t, "bo", cat.PathSegment())

	cat, err = ParseCategory("Waterlevel")
	require.NoError(t, err)
	assert.Equal(t, Waterlevel, cat)

	_, err = ParseCategory("lava")
	assert.Error(t, err)
}
