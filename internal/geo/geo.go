// Package geo holds coordinate parsing and great-circle distance helpers
// used by proximity queries.
package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

const earthRadiusKm = 6371.0

// ParseDMS parses an upstream coordinate. The catalog feeds deliver a plain
// decimal degree string, a degrees-minutes pair ("127-16"), or a
// degrees-minutes-seconds triple ("127-16-40.1") joined by hyphens.
func ParseDMS(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, hrfco.Validationf("empty coordinate")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, hrfco.Validationf("unparseable coordinate %q", s)
	}
	deg, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, hrfco.Validationf("unparseable coordinate %q", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, hrfco.Validationf("unparseable coordinate %q", s)
	}
	var sec float64
	if len(parts) == 3 {
		sec, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return 0, hrfco.Validationf("unparseable coordinate %q", s)
		}
	}

	v := deg + min/60 + sec/3600
	if deg < 0 {
		v = deg - min/60 - sec/3600
	}
	return v, nil
}

// Haversine returns the great-circle distance in kilometers between two
// points given as (lat, lon) in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
