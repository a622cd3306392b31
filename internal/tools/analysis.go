package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/alert"
	"github.com/hydroseo/hrfco-mcp/internal/basin"
	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

// analyzeWaterLevel fetches a water-level lookback window and reports the
// latest value against every defined threshold, plus a coarse trend.
func (r *Registry) analyzeWaterLevel(ctx context.Context, args map[string]any) (any, error) {
	st, err := r.catalog.Resolve(ctx, hrfco.Waterlevel, stringArg(args, "station", ""))
	if err != nil {
		return nil, err
	}

	g, err := hrfco.ParseGranularity(stringArg(args, "granularity", ""))
	if err != nil {
		return nil, err
	}
	hours := intArg(args, "hours", 24)

	now := time.Now()
	rng, err := hrfco.NormalizeRange(
		now.Add(-time.Duration(hours)*time.Hour).Format("200601021504"),
		now.Format("200601021504"), g, now)
	if err != nil {
		return nil, err
	}

	payload, err := r.client.FetchSeries(ctx, hrfco.Waterlevel, g, st.Code, &rng)
	if err != nil {
		return nil, err
	}

	recs := records(payload)
	schema := hrfco.Waterlevel.Schema()
	stats := seriesStats(recs, schema.ValueKey)

	result := map[string]any{
		"station":     stationSummary(st),
		"granularity": string(g),
		"period": map[string]any{
			"start": rng.Start,
			"end":   rng.End,
			"hours": hours,
		},
		"unit": schema.Unit,
	}
	if stats == nil {
		result["status"] = "no_data"
		return result, nil
	}
	result["series_stats"] = stats

	latest := stats["latest"].(float64)
	current := map[string]any{
		"value": latest,
		"at":    stats["latest_at"],
	}
	if level, ok := alert.Classify(&latest, st.Thresholds); ok {
		current["alert_status"] = string(level)
	}
	result["current"] = current

	if analysis := alert.Analyze(latest, st.Thresholds); analysis != nil {
		byLevel := make(map[string]any, len(analysis))
		for level, status := range analysis {
			byLevel[string(level)] = map[string]any{
				"threshold": status.Threshold,
				"status":    status.Status,
				"margin":    round3(status.Margin),
			}
		}
		result["alert_analysis"] = byLevel
	}

	result["trend"] = trendOf(recs, schema.ValueKey)
	return result, nil
}

// trendOf compares the first and last readable values of the window.
func trendOf(recs []map[string]any, valueKey string) map[string]any {
	var first, last *float64
	for _, rec := range recs {
		v := valueOf(rec, valueKey)
		if v == nil {
			continue
		}
		if first == nil {
			first = v
		}
		last = v
	}
	if first == nil || last == nil {
		return map[string]any{"direction": "unknown"}
	}
	change := *last - *first
	direction := "steady"
	switch {
	case change > 0.01:
		direction = "rising"
	case change < -0.01:
		direction = "falling"
	}
	return map[string]any{
		"direction": direction,
		"change":    round3(change),
	}
}

// alertStatusSummary classifies every monitored water-level station by its
// current reading and aggregates the counts. An optional region string
// restricts the summary to stations whose address contains it.
func (r *Registry) alertStatusSummary(ctx context.Context, args map[string]any) (any, error) {
	stations, err := r.catalog.Stations(ctx, hrfco.Waterlevel)
	if err != nil {
		return nil, err
	}

	latest := r.latestByStation(ctx, hrfco.Waterlevel)
	if len(latest) == 0 {
		return nil, hrfco.APIError("", nil, "no current water-level observations available")
	}

	region := stringArg(args, "region", "")
	schema := hrfco.Waterlevel.Schema()

	counts := map[string]int{}
	var alerts []map[string]any
	classified := 0
	for i := range stations {
		st := &stations[i]
		if region != "" && !strings.Contains(st.Address, region) && !strings.Contains(st.Name, region) {
			continue
		}
		rec, ok := latest[st.Code.String()]
		if !ok {
			continue
		}
		value := valueOf(rec, schema.ValueKey)
		level, ok := alert.Classify(value, st.Thresholds)
		if !ok {
			continue
		}
		classified++
		counts[string(level)]++
		if level != alert.Normal {
			alerts = append(alerts, map[string]any{
				"station":    stationSummary(st),
				"level":      string(level),
				"value":      *value,
				"ymdhm":      timestampOf(rec),
				"thresholds": st.Thresholds,
			})
		}
	}

	result := map[string]any{
		"counts":              counts,
		"stations_classified": classified,
		"alerts":              alerts,
		"alert_count":         len(alerts),
		"unit":                schema.Unit,
	}
	if region != "" {
		result["region"] = region
	}
	return result, nil
}

// basinAnalysis composes catalog, basin, and spatial lookups around one
// water-level station: code-ordered basin neighbors with their current
// readings, and an optional radius scan over additional categories.
// Partial failures appear inline rather than failing the whole analysis.
func (r *Registry) basinAnalysis(ctx context.Context, args map[string]any) (any, error) {
	st, err := r.catalog.Resolve(ctx, hrfco.Waterlevel, stringArg(args, "station", ""))
	if err != nil {
		return nil, err
	}

	stations, err := r.catalog.Stations(ctx, hrfco.Waterlevel)
	if err != nil {
		return nil, err
	}

	latest := r.latestByStation(ctx, hrfco.Waterlevel)
	schema := hrfco.Waterlevel.Schema()

	rel := basin.Relate(*st, stations)
	annotate := func(group []catalog.Station) []map[string]any {
		out := make([]map[string]any, 0, len(group))
		for i := range group {
			entry := stationSummary(&group[i])
			if rec, ok := latest[group[i].Code.String()]; ok {
				if v := valueOf(rec, schema.ValueKey); v != nil {
					entry["current_value"] = *v
					entry["ymdhm"] = timestampOf(rec)
					if level, ok := alert.Classify(v, group[i].Thresholds); ok {
						entry["alert_status"] = string(level)
					}
				}
			}
			out = append(out, entry)
		}
		return out
	}

	centre := stationSummary(st)
	if rec, ok := latest[st.Code.String()]; ok {
		if v := valueOf(rec, schema.ValueKey); v != nil {
			centre["current_value"] = *v
			centre["ymdhm"] = timestampOf(rec)
			if level, ok := alert.Classify(v, st.Thresholds); ok {
				centre["alert_status"] = string(level)
			}
		}
	}

	result := map[string]any{
		"station": centre,
		"relations": map[string]any{
			"same_basin": annotate(rel.SameBasin),
			"upstream":   annotate(rel.Upstream),
			"downstream": annotate(rel.Downstream),
			"caveat":     rel.Caveat,
		},
		"unit": schema.Unit,
	}

	if radius := floatArg(args, "radius_km", 0); radius > 0 {
		if !st.HasCoords {
			result["nearby"] = map[string]any{
				"status": "error",
				"reason": fmt.Sprintf("station %s has no coordinates", st.Code),
			}
			return result, nil
		}
		result["nearby"] = r.radiusScan(ctx, st, radius, categoriesArg(args))
	}
	return result, nil
}

func categoriesArg(args map[string]any) []hrfco.Category {
	raw, _ := args["categories"].([]any)
	var out []hrfco.Category
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if cat, err := hrfco.ParseCategory(s); err == nil {
			out = append(out, cat)
		}
	}
	if len(out) == 0 {
		out = []hrfco.Category{hrfco.Waterlevel, hrfco.Rainfall}
	}
	return out
}

// radiusScan summarizes each requested category's stations around a centre.
// A failing category contributes an error entry instead of aborting.
func (r *Registry) radiusScan(ctx context.Context, centre *catalog.Station, radius float64, cats []hrfco.Category) map[string]any {
	scan := map[string]any{"radius_km": radius}
	for _, cat := range cats {
		within, err := r.catalog.Nearby(ctx, cat, centre.Lat, centre.Lon, radius, 0)
		if err != nil {
			scan[string(cat)] = map[string]any{"status": "error", "reason": err.Error()}
			continue
		}
		latest := r.latestByStation(ctx, cat)
		valueKey := cat.Schema().ValueKey
		entries := make([]map[string]any, 0, len(within))
		for i := range within {
			st := within[i].Station
			entry := stationSummary(&st)
			entry["distance_km"] = round3(within[i].DistanceKm)
			if rec, ok := latest[st.Code.String()]; ok {
				if v := valueOf(rec, valueKey); v != nil {
					entry["current_value"] = *v
					entry["ymdhm"] = timestampOf(rec)
				}
			}
			entries = append(entries, entry)
		}
		scan[string(cat)] = map[string]any{
			"stations": entries,
			"count":    len(entries),
			"unit":     cat.Schema().Unit,
		}
	}
	return scan
}
