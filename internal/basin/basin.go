// Package basin groups stations by their standard sub-basin codes and
// derives coarse upstream/downstream relations from code ordering.
package basin

import (
	"sort"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
)

// Caveat documents the limits of code-ordering-based relations. It is
// surfaced verbatim in every relations response.
const Caveat = "upstream/downstream relations are inferred from standard sub-basin code ordering, which approximates but does not guarantee true hydrological connectivity"

const (
	maxUpstream   = 3
	maxDownstream = 3
	maxSameBasin  = 5
)

// Relations holds the neighbors of a target station grouped by inferred
// position. Slices are ordered by sub-basin code, then station code.
type Relations struct {
	SameBasin  []catalog.Station `json:"same_basin"`
	Upstream   []catalog.Station `json:"upstream"`
	Downstream []catalog.Station `json:"downstream"`
	Caveat     string            `json:"caveat"`
}

// Relate classifies every other station with a known sub-basin code
// relative to the target: an equal code means the same sub-basin, a
// lexicographically smaller code is treated as upstream, a larger one as
// downstream. Group sizes are capped, keeping the nearest codes to the
// target.
func Relate(target catalog.Station, stations []catalog.Station) Relations {
	rel := Relations{Caveat: Caveat}
	if target.SubBasin == "" {
		return rel
	}

	var up, down []catalog.Station
	for _, st := range stations {
		if st.Code == target.Code || st.SubBasin == "" {
			continue
		}
		switch {
		case st.SubBasin == target.SubBasin:
			rel.SameBasin = append(rel.SameBasin, st)
		case st.SubBasin < target.SubBasin:
			up = append(up, st)
		default:
			down = append(down, st)
		}
	}

	byCode := func(s []catalog.Station) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].SubBasin != s[j].SubBasin {
				return s[i].SubBasin < s[j].SubBasin
			}
			return s[i].Code < s[j].Code
		})
	}
	byCode(rel.SameBasin)
	byCode(up)
	byCode(down)

	// Upstream keeps the largest codes below the target (closest to it).
	if len(up) > maxUpstream {
		up = up[len(up)-maxUpstream:]
	}
	if len(down) > maxDownstream {
		down = down[:maxDownstream]
	}
	if len(rel.SameBasin) > maxSameBasin {
		rel.SameBasin = rel.SameBasin[:maxSameBasin]
	}

	rel.Upstream = up
	rel.Downstream = down
	return rel
}
