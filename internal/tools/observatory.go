package tools

import (
	"context"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

func (r *Registry) searchObservatory(ctx context.Context, args map[string]any) (any, error) {
	query := stringArg(args, "query", "")
	page := intArg(args, "page", 1)
	perPage := intArg(args, "per_page", r.cfg.Tools.DefaultPageSize)
	if perPage > r.cfg.Tools.MaxPageSize {
		perPage = r.cfg.Tools.MaxPageSize
	}

	// A category filter restricts the search; without one every category
	// is searched and results are grouped.
	if raw := stringArg(args, "category", ""); raw != "" {
		cat, err := hrfco.ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		stations, total, err := r.catalog.Search(ctx, cat, query, (page-1)*perPage, perPage)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"query":    query,
			"category": string(cat),
			"results":  stationList(stations),
			"summary": map[string]any{
				"total_count": total,
				"page":        page,
				"per_page":    perPage,
			},
		}, nil
	}

	grouped := make(map[string]any, len(hrfco.Categories))
	total := 0
	for _, cat := range hrfco.Categories {
		stations, n, err := r.catalog.Search(ctx, cat, query, 0, perPage)
		if err != nil {
			// partial results beat total failure across categories
			grouped[string(cat)] = map[string]any{"status": "error", "reason": err.Error()}
			continue
		}
		grouped[string(cat)] = map[string]any{
			"results":     stationList(stations),
			"total_count": n,
		}
		total += n
	}
	return map[string]any{
		"query":       query,
		"categories":  grouped,
		"total_count": total,
	}, nil
}

func (r *Registry) observatoryInfo(ctx context.Context, args map[string]any) (any, error) {
	cat, err := hrfco.ParseCategory(stringArg(args, "category", ""))
	if err != nil {
		return nil, err
	}

	if ident := stringArg(args, "station", ""); ident != "" {
		st, err := r.catalog.Resolve(ctx, cat, ident)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"category": string(cat),
			"station":  stationSummary(st),
		}, nil
	}

	stations, err := r.catalog.Stations(ctx, cat)
	if err != nil {
		return nil, err
	}

	page := intArg(args, "page", 1)
	perPage := intArg(args, "per_page", r.cfg.Tools.DefaultPageSize)
	if perPage > r.cfg.Tools.MaxPageSize {
		perPage = r.cfg.Tools.MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(stations)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return map[string]any{
		"category": string(cat),
		"content":  stationList(stations[start:end]),
		"summary": map[string]any{
			"total_count": total,
			"page":        page,
			"per_page":    perPage,
			"total_pages": (total + perPage - 1) / perPage,
		},
	}, nil
}

func stationList(stations []catalog.Station) []map[string]any {
	out := make([]map[string]any, 0, len(stations))
	for i := range stations {
		out = append(out, stationSummary(&stations[i]))
	}
	return out
}
