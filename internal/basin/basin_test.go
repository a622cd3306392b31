package basin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

func station(code, subBasin string) catalog.Station {
	return catalog.Station{
		Code:     hrfco.StationCode(code),
		Name:     "station " + code,
		SubBasin: subBasin,
	}
}

func codes(stations []catalog.Station) []string {
	out := make([]string, 0, len(stations))
	for _, st := range stations {
		out = append(out, st.Code.String())
	}
	return out
}

func TestRelatePartition(t *testing.T) {
	target := station("T", "A2")
	others := []catalog.Station{
		station("s1", "A1"),
		station("s2", "A1"),
		station("s3", "B1"),
		target,
	}

	rel := Relate(target, others)

	assert.Empty(t, rel.SameBasin, "target itself is excluded")
	assert.ElementsMatch(t, []string{"s1", "s2"}, codes(rel.Upstream))
	assert.Equal(t, []string{"s3"}, codes(rel.Downstream))
	assert.Equal(t, Caveat, rel.Caveat)
}

func TestRelateSameBasin(t *testing.T) {
	target := station("T", "A2")
	others := []catalog.Station{
		target,
		station("n1", "A2"),
		station("n2", "A2"),
	}

	rel := Relate(target, others)
	assert.ElementsMatch(t, []string{"n1", "n2"}, codes(rel.SameBasin))
	assert.Empty(t, rel.Upstream)
	assert.Empty(t, rel.Downstream)
}

func TestRelateCaps(t *testing.T) {
	target := station("T", "M5")
	var others []catalog.Station
	for i := 0; i < 8; i++ {
		others = append(others, station(fmt.Sprintf("u%d", i), fmt.Sprintf("M%d", i%5)))   // below M5
		others = append(others, station(fmt.Sprintf("d%d", i), fmt.Sprintf("M%d", 6+i%3))) // above M5
		others = append(others, station(fmt.Sprintf("s%d", i), "M5"))
	}

	rel := Relate(target, others)
	assert.Len(t, rel.Upstream, 3)
	assert.Len(t, rel.Downstream, 3)
	assert.Len(t, rel.SameBasin, 5)

	// upstream keeps the codes closest below the target
	gotUp := []string{rel.Upstream[0].SubBasin, rel.Upstream[1].SubBasin, rel.Upstream[2].SubBasin}
	assert.Equal(t, []string{"M2", "M3", "M4"}, gotUp)
	// downstream keeps the smallest codes above the target
	for _, st := range rel.Downstream {
		assert.Equal(t, "M6", st.SubBasin)
	}
}

func TestRelateSkipsUnknownSubBasins(t *testing.T) {
	target := station("T", "")
	rel := Relate(target, []catalog.Station{station("x", "A1")})
	assert.Empty(t, rel.SameBasin)
	assert.Empty(t, rel.Upstream)
	assert.Empty(t, rel.Downstream)

	target = station("T", "A2")
	rel = Relate(target, []catalog.Station{station("x", ""), station("y", "A1")})
	require.Len(t, rel.Upstream, 1)
	assert.Equal(t, "y", rel.Upstream[0].Code.String())
}
