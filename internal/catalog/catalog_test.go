package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

var testInfo = map[string][]map[string]any{
	"waterlevel": {
		{
			"wlobscd": "4009670", "obsnm": "공주보", "agcnm": "환경부",
			"addr": "충청남도 공주시", "lon": "127-7-30", "lat": "36-28-0",
			"attwl": "2.0", "wrnwl": "4.0", "almwl": "5.0", "srswl": "6.0", "pfh": "8.5",
			"sbsncd": "300401",
		},
		{
			"wlobscd": "4009690", "obsnm": "세종보", "agcnm": "환경부",
			"addr": "세종특별자치시", "lon": "127-17-0", "lat": "36-29-0",
			"attwl": "", "wrnwl": "", "almwl": "", "srswl": "",
			"sbsncd": "300402",
		},
		{
			"wlobscd": "5001640", "obsnm": "진주시(남강)", "agcnm": "환경부",
			"addr": "경상남도 진주시", "lon": "bad-coord", "lat": "35-10-0",
			"sbsncd": "200901",
		},
	},
	"dam": {
		{"dmobscd": "1001210", "obsnm": "영천댐", "agcnm": "K-water", "addr": "경상북도 영천시", "lon": "129-1-12", "lat": "35-59-53"},
		{"dmobscd": "1001220", "obsnm": "안동댐", "agcnm": "K-water", "addr": "경상북도 안동시", "lon": "128-46-5", "lat": "36-34-41"},
		{"dmobscd": "1001230", "obsnm": "영천시험댐", "agcnm": "K-water", "addr": "경상북도 영천시", "lon": "129-2-0", "lat": "36-0-0"},
	},
	"rainfall": {
		{"rfobscd": "10014010", "obsnm": "서울(송월동)", "agcnm": "기상청", "addr": "서울특별시 종로구", "lon": "126-57-0", "lat": "37-34-0"},
	},
}

func newTestCatalog(t *testing.T) (*Catalog, *atomic.Int64) {
	t.Helper()

	var infoHits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		require.GreaterOrEqual(t, len(parts), 3)
		cat := parts[1]
		if strings.HasSuffix(r.URL.Path, "/info.json") {
			infoHits.Add(1)
			json.NewEncoder(w).Encode(map[string]any{"content": testInfo[cat]})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	t.Cleanup(ts.Close)

	log := logging.New(io.Discard, "silent")
	cache := hrfco.NewTTLCache(time.Minute, time.Hour, 1000, log)
	client := hrfco.NewClient(config.UpstreamConfig{
		BaseURL:        ts.URL,
		APIKey:         "testkey",
		TimeoutSeconds: 5,
		MaxConcurrent:  5,
		RateLimitRPS:   1000,
	}, cache, log)
	t.Cleanup(client.Close)

	return New(client, time.Hour, log), &infoHits
}

func TestSnapshotBuild(t *testing.T) {
	cat, _ := newTestCatalog(t)

	stations, err := cat.Stations(context.Background(), hrfco.Waterlevel)
	require.NoError(t, err)
	require.Len(t, stations, 3)

	st, err := cat.Resolve(context.Background(), hrfco.Waterlevel, "4009670")
	require.NoError(t, err)
	assert.Equal(t, "공주보", st.Name)
	assert.True(t, st.HasCoords)
	assert.InDelta(t, 36.0+28.0/60, st.Lat, 1e-6)
	assert.InDelta(t, 127.0+7.5/60, st.Lon, 1e-6)
	assert.Equal(t, "300401", st.SubBasin)

	require.NotNil(t, st.Thresholds)
	assert.Equal(t, 2.0, *st.Thresholds.Attention)
	assert.Equal(t, 6.0, *st.Thresholds.Serious)
	assert.Equal(t, 8.5, *st.Thresholds.PlanFlood)
}

func TestSnapshotToleratesBadRecords(t *testing.T) {
	cat, _ := newTestCatalog(t)

	// blank threshold strings mean no thresholds
	st, err := cat.Resolve(context.Background(), hrfco.Waterlevel, "4009690")
	require.NoError(t, err)
	assert.Nil(t, st.Thresholds)

	// a malformed coordinate skips coords but keeps the station
	st, err = cat.Resolve(context.Background(), hrfco.Waterlevel, "5001640")
	require.NoError(t, err)
	assert.False(t, st.HasCoords)
}

func TestResolveByName(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	st, err := cat.Resolve(ctx, hrfco.Waterlevel, "공주보")
	require.NoError(t, err)
	assert.Equal(t, hrfco.StationCode("4009670"), st.Code)

	// unknown identifier yields an observatory error with suggestions
	_, err = cat.Resolve(ctx, hrfco.Waterlevel, "공주")
	require.Error(t, err)
	assert.Equal(t, hrfco.KindObservatory, hrfco.KindOf(err))
	assert.Contains(t, err.Error(), "공주보")

	_, err = cat.Resolve(ctx, hrfco.Waterlevel, "없는곳")
	require.Error(t, err)
	assert.Equal(t, hrfco.KindObservatory, hrfco.KindOf(err))
}

func TestResolveEmpty(t *testing.T) {
	cat, _ := newTestCatalog(t)
	_, err := cat.Resolve(context.Background(), hrfco.Waterlevel, "  ")
	require.Error(t, err)
	assert.Equal(t, hrfco.KindValidation, hrfco.KindOf(err))
}

func TestSearchRanking(t *testing.T) {
	cat, _ := newTestCatalog(t)

	results, total, err := cat.Search(context.Background(), hrfco.Dam, "영천", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total) // 영천댐 and 영천시험댐 match by name
	require.NotEmpty(t, results)
	assert.Equal(t, hrfco.StationCode("1001210"), results[0].Code)
}

func TestSearchExactNameFirst(t *testing.T) {
	cat, _ := newTestCatalog(t)

	results, _, err := cat.Search(context.Background(), hrfco.Dam, "영천댐", 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "영천댐", results[0].Name)
}

func TestSearchPagination(t *testing.T) {
	cat, _ := newTestCatalog(t)

	page1, total, err := cat.Search(context.Background(), hrfco.Dam, "", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page1, 2)

	page2, _, err := cat.Search(context.Background(), hrfco.Dam, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].Code, page2[0].Code)
}

func TestSnapshotReusedWithinRefreshWindow(t *testing.T) {
	cat, hits := newTestCatalog(t)
	ctx := context.Background()

	_, err := cat.Stations(ctx, hrfco.Rainfall)
	require.NoError(t, err)
	_, err = cat.Stations(ctx, hrfco.Rainfall)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second access within the refresh window must not refetch")
}

func TestColdBurstSharesOneRefresh(t *testing.T) {
	cat, hits := newTestCatalog(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stations, err := cat.Stations(ctx, hrfco.Waterlevel)
			assert.NoError(t, err)
			assert.Len(t, stations, 3, "readers only ever see a complete snapshot")
			st, err := cat.Resolve(ctx, hrfco.Waterlevel, "공주보")
			assert.NoError(t, err)
			assert.Equal(t, hrfco.StationCode("4009670"), st.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), hits.Load(), "a cold burst must share a single upstream fetch")
}

func TestRefreshDoesNotBlockOtherCategories(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		require.GreaterOrEqual(t, len(parts), 3)
		if parts[1] == "waterlevel" {
			close(started)
			<-release
		}
		json.NewEncoder(w).Encode(map[string]any{"content": testInfo[parts[1]]})
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(unblock)

	log := logging.New(io.Discard, "silent")
	cache := hrfco.NewTTLCache(time.Minute, time.Hour, 1000, log)
	client := hrfco.NewClient(config.UpstreamConfig{
		BaseURL:        ts.URL,
		APIKey:         "testkey",
		TimeoutSeconds: 30,
		MaxConcurrent:  5,
		RateLimitRPS:   1000,
	}, cache, log)
	t.Cleanup(client.Close)
	cat := New(client, time.Hour, log)

	done := make(chan error, 1)
	go func() {
		_, err := cat.Stations(context.Background(), hrfco.Waterlevel)
		done <- err
	}()
	<-started

	// with the waterlevel refresh parked mid-fetch, other categories answer
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stations, err := cat.Stations(ctx, hrfco.Dam)
	require.NoError(t, err, "a dam lookup must not wait for the waterlevel refresh")
	assert.Len(t, stations, 3)

	unblock()
	require.NoError(t, <-done)
}

func TestNearby(t *testing.T) {
	cat, _ := newTestCatalog(t)

	// point near 공주보
	within, err := cat.Nearby(context.Background(), hrfco.Waterlevel, 36.47, 127.12, 30, 0)
	require.NoError(t, err)
	require.NotEmpty(t, within)

	for i := 1; i < len(within); i++ {
		assert.LessOrEqual(t, within[i-1].DistanceKm, within[i].DistanceKm, "ascending by distance")
	}
	for _, sd := range within {
		assert.LessOrEqual(t, sd.DistanceKm, 30.0)
	}
	// the station with no coords never appears
	for _, sd := range within {
		assert.NotEqual(t, hrfco.StationCode("5001640"), sd.Station.Code)
	}
}
