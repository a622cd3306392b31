package tools

import (
	"context"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/geo"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/version"
)

func (r *Registry) listTools(ctx context.Context, args map[string]any) (any, error) {
	return map[string]any{
		"tools":   r.Definitions(),
		"count":   len(r.tools),
		"server":  "hrfco-mcp",
		"version": version.Version,
		"status":  "ok",
	}, nil
}

func (r *Registry) serverHealth(ctx context.Context, args map[string]any) (any, error) {
	return map[string]any{
		"status":         "ok",
		"version":        version.Version,
		"uptime_seconds": int(time.Since(r.startedAt).Seconds()),
		"cache":          r.client.Cache().Stats(),
		"catalog_age":    r.catalog.Freshness(),
		"place_names":    geo.PlaceCount(),
	}, nil
}

// serverConfig reports the effective configuration with the credential
// redacted, plus the per-category record schemas and granularity limits.
func (r *Registry) serverConfig(ctx context.Context, args map[string]any) (any, error) {
	categories := make(map[string]any, len(hrfco.Categories))
	for _, cat := range hrfco.Categories {
		schema := cat.Schema()
		entry := map[string]any{
			"code_key":       schema.CodeKey,
			"value_key":      schema.ValueKey,
			"unit":           schema.Unit,
			"default_fields": schema.DefaultFields,
			"all_fields":     schema.AllFields,
		}
		if len(schema.AlertKeys) > 0 {
			entry["alert_keys"] = schema.AlertKeys
		}
		categories[string(cat)] = entry
	}

	granularities := make(map[string]any)
	for _, g := range []hrfco.Granularity{hrfco.T10M, hrfco.T1H, hrfco.T1D} {
		granularities[string(g)] = map[string]any{
			"timestamp_width":      g.TimestampWidth(),
			"max_span_days":        int(g.MaxSpan().Hours() / 24),
			"default_window_hours": int(g.DefaultWindow().Hours()),
		}
	}

	return map[string]any{
		"base_url":                r.cfg.Upstream.BaseURL,
		"api_key":                 "***",
		"timeout_seconds":         r.cfg.Upstream.TimeoutSeconds,
		"max_concurrent":          r.cfg.Upstream.MaxConcurrent,
		"cache_ttl_seconds":       r.cfg.Cache.TTLSeconds,
		"catalog_refresh_seconds": r.cfg.Catalog.RefreshSeconds,
		"max_recent_count":        r.cfg.Tools.MaxRecentCount,
		"max_batch_requests":      r.cfg.Tools.MaxBatchRequests,
		"default_page_size":       r.cfg.Tools.DefaultPageSize,
		"max_page_size":           r.cfg.Tools.MaxPageSize,
		"categories":              categories,
		"granularities":           granularities,
	}, nil
}
