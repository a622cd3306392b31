package tools

import (
	"context"
	"math"

	"github.com/hydroseo/hrfco-mcp/internal/geo"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

// hydroDataNearby resolves a point from an address or explicit coordinates,
// then returns stations within the radius sorted nearest-first, each with
// its latest observation when one is available.
func (r *Registry) hydroDataNearby(ctx context.Context, args map[string]any) (any, error) {
	lat := floatArg(args, "lat", math.NaN())
	lon := floatArg(args, "lon", math.NaN())
	address := stringArg(args, "address", "")

	var resolved string
	switch {
	case !math.IsNaN(lat) && !math.IsNaN(lon):
	case address != "":
		place, ok := geo.Lookup(address)
		if !ok {
			return nil, hrfco.Validationf("unknown place %q; pass lat/lon instead", address)
		}
		lat, lon, resolved = place.Lat, place.Lon, place.Name
	default:
		return nil, hrfco.Validationf("either address or both lat and lon are required")
	}

	cat, err := hrfco.ParseCategory(stringArg(args, "category", "waterlevel"))
	if err != nil {
		return nil, err
	}
	radius := floatArg(args, "radius_km", 10)
	count := intArg(args, "count", 10)

	within, err := r.catalog.Nearby(ctx, cat, lat, lon, radius, count)
	if err != nil {
		return nil, err
	}

	// One all-stations fetch gives the latest record for every code.
	latest := r.latestByStation(ctx, cat)

	schema := cat.Schema()
	stations := make([]map[string]any, 0, len(within))
	for i := range within {
		st := within[i].Station
		entry := stationSummary(&st)
		entry["distance_km"] = round3(within[i].DistanceKm)
		if rec, ok := latest[st.Code.String()]; ok {
			obs := map[string]any{"ymdhm": timestampOf(rec)}
			if v := valueOf(rec, schema.ValueKey); v != nil {
				obs[schema.ValueKey] = *v
			}
			entry["latest"] = obs
		}
		stations = append(stations, entry)
	}

	query := map[string]any{
		"lat":       lat,
		"lon":       lon,
		"radius_km": radius,
		"category":  string(cat),
	}
	if address != "" {
		query["address"] = address
		query["resolved_place"] = resolved
	}
	return map[string]any{
		"query":           query,
		"nearby_stations": stations,
		"count":           len(stations),
		"unit":            schema.Unit,
	}, nil
}

// latestByStation fetches the category-wide current observations and keys
// them by station code. Best effort: a failed fetch yields an empty map and
// nearby results simply omit the latest block.
func (r *Registry) latestByStation(ctx context.Context, cat hrfco.Category) map[string]map[string]any {
	out := make(map[string]map[string]any)
	payload, err := r.client.FetchSeries(ctx, cat, hrfco.T1H, "", nil)
	if err != nil {
		r.log.Warn().Str("category", string(cat)).Err(err).Msg("category-wide fetch failed")
		return out
	}
	codeKey := cat.Schema().CodeKey
	for _, rec := range records(payload) {
		code, _ := rec[codeKey].(string)
		if code == "" {
			continue
		}
		// records are sorted ascending, so the last write per code wins
		out[code] = rec
	}
	return out
}
