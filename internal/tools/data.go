package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

// hydroData is the core time-series tool:
// validate → resolve station → normalize dates → fetch (cache-fronted,
// gated) → enrich with alert status → project → paginate.
func (r *Registry) hydroData(ctx context.Context, args map[string]any) (any, error) {
	cat, err := hrfco.ParseCategory(stringArg(args, "category", ""))
	if err != nil {
		return nil, err
	}
	g, err := hrfco.ParseGranularity(stringArg(args, "granularity", ""))
	if err != nil {
		return nil, err
	}

	st, err := r.catalog.Resolve(ctx, cat, stringArg(args, "station", ""))
	if err != nil {
		return nil, err
	}

	rng, err := hrfco.NormalizeRange(stringArg(args, "start", ""), stringArg(args, "end", ""), g, time.Now())
	if err != nil {
		return nil, err
	}

	payload, err := r.client.FetchSeries(ctx, cat, g, st.Code, &rng)
	if err != nil {
		return nil, err
	}

	recs := records(payload)
	schema := cat.Schema()
	enrichAlertStatus(recs, schema.ValueKey, st.Thresholds)

	projected, err := project(recs, schema, fieldsArg(args))
	if err != nil {
		return nil, err
	}

	pageRecs, summary := r.pageOf(projected, schema, intArg(args, "page", 1), intArg(args, "per_page", 0))
	return map[string]any{
		"station":     stationSummary(st),
		"category":    string(cat),
		"granularity": string(g),
		"unit":        schema.Unit,
		"range":       map[string]any{"start": rng.Start, "end": rng.End},
		"content":     pageRecs,
		"summary":     summary,
	}, nil
}

func (r *Registry) recentData(ctx context.Context, args map[string]any) (any, error) {
	cat, err := hrfco.ParseCategory(stringArg(args, "category", ""))
	if err != nil {
		return nil, err
	}
	g, err := hrfco.ParseGranularity(stringArg(args, "granularity", ""))
	if err != nil {
		return nil, err
	}

	count := intArg(args, "count", 10)
	if count > r.cfg.Tools.MaxRecentCount {
		return nil, hrfco.Validationf("count %d exceeds the maximum of %d", count, r.cfg.Tools.MaxRecentCount)
	}

	st, err := r.catalog.Resolve(ctx, cat, stringArg(args, "station", ""))
	if err != nil {
		return nil, err
	}

	// The upstream serves its implicit recent window when no range is given.
	payload, err := r.client.FetchSeries(ctx, cat, g, st.Code, nil)
	if err != nil {
		return nil, err
	}

	recs := records(payload)
	if len(recs) > count {
		recs = recs[len(recs)-count:]
	}

	schema := cat.Schema()
	enrichAlertStatus(recs, schema.ValueKey, st.Thresholds)
	projected, err := project(recs, schema, fieldsArg(args))
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"station":     stationSummary(st),
		"category":    string(cat),
		"granularity": string(g),
		"unit":        schema.Unit,
		"content":     projected,
		"count":       len(projected),
	}
	if stats := seriesStats(recs, schema.ValueKey); stats != nil {
		result["stats"] = stats
	}
	return result, nil
}

// batchHydroData fans one goroutine out per sub-request. Sub-requests are
// independent: one failure neither cancels nor contaminates its siblings,
// and results are keyed by the caller's request id.
func (r *Registry) batchHydroData(ctx context.Context, args map[string]any) (any, error) {
	raw, _ := args["requests"].([]any)
	if len(raw) == 0 {
		return nil, hrfco.Validationf("requests must be a non-empty array")
	}
	if len(raw) > r.cfg.Tools.MaxBatchRequests {
		return nil, hrfco.Validationf("batch of %d exceeds the maximum of %d requests",
			len(raw), r.cfg.Tools.MaxBatchRequests)
	}

	type entry struct {
		id     string
		result any
	}

	var wg sync.WaitGroup
	entries := make([]entry, len(raw))
	seen := make(map[string]int, len(raw))
	for i, item := range raw {
		sub, ok := item.(map[string]any)
		if !ok {
			entries[i] = entry{
				id:     fmt.Sprintf("request_%d", i),
				result: map[string]any{"status": "error", "error": "sub-request must be an object"},
			}
			continue
		}

		id := stringArg(sub, "request_id", "")
		if id == "" {
			id = stringArg(sub, "id", "")
		}
		if id == "" {
			id = uuid.NewString()
		}
		// colliding ids get a suffix so no entry shadows another
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		entries[i].id = id

		wg.Add(1)
		go func(i int, sub map[string]any) {
			defer wg.Done()
			data, err := r.hydroData(ctx, sub)
			if err != nil {
				entries[i].result = map[string]any{
					"status": "error",
					"error":  err.Error(),
					"kind":   string(hrfco.KindOf(err)),
				}
				return
			}
			entries[i].result = map[string]any{"status": "success", "data": data}
		}(i, sub)
	}
	wg.Wait()

	results := make(map[string]any, len(entries))
	succeeded := 0
	for _, e := range entries {
		results[e.id] = e.result
		if m, ok := e.result.(map[string]any); ok && m["status"] == "success" {
			succeeded++
		}
	}
	return map[string]any{
		"results": results,
		"summary": map[string]any{
			"total":     len(entries),
			"succeeded": succeeded,
			"failed":    len(entries) - succeeded,
		},
	}, nil
}
