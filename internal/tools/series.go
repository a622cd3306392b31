package tools

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hydroseo/hrfco-mcp/internal/alert"
	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

// records pulls the observation list out of a normalized upstream payload,
// sorted ascending by observation timestamp. Each record is copied: the
// payload may be shared by every cache hit for its URL, so enrichment must
// never write into the cached maps.
func records(payload map[string]any) []map[string]any {
	content, _ := payload["content"].([]any)
	out := make([]map[string]any, 0, len(content))
	for _, raw := range content {
		rec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		own := make(map[string]any, len(rec))
		for k, v := range rec {
			own[k] = v
		}
		out = append(out, own)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return timestampOf(out[i]) < timestampOf(out[j])
	})
	return out
}

func timestampOf(rec map[string]any) string {
	s, _ := rec["ymdhm"].(string)
	return s
}

// valueOf reads a numeric observation field, tolerating the upstream's
// string encoding. Blank and non-numeric values read as absent.
func valueOf(rec map[string]any, key string) *float64 {
	switch v := rec[key].(type) {
	case float64:
		return &v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// project reduces each record to the requested fields. An empty request
// uses the category's default projection; unknown field names are a
// validation error. The timestamp column always survives projection.
func project(recs []map[string]any, schema hrfco.Schema, fields []string) ([]map[string]any, error) {
	if len(fields) == 0 {
		fields = schema.DefaultFields
	} else {
		for _, f := range fields {
			if !contains(schema.AllFields, f) {
				return nil, hrfco.Validationf("unknown field %q (available: %s)",
					f, strings.Join(schema.AllFields, ", "))
			}
		}
		if !contains(fields, "ymdhm") {
			fields = append([]string{"ymdhm"}, fields...)
		}
	}

	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		slim := make(map[string]any, len(fields)+1)
		for _, f := range fields {
			if v, ok := rec[f]; ok {
				slim[f] = v
			}
		}
		// enrichment keys are carried through projection
		if v, ok := rec["alert_status"]; ok {
			slim["alert_status"] = v
		}
		out = append(out, slim)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fieldsArg reads the optional "fields" array argument.
func fieldsArg(args map[string]any) []string {
	raw, _ := args["fields"].([]any)
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// enrichAlertStatus stamps each record with the station's alert level for
// the primary value. Records stay untouched when the station has no
// thresholds or the value is absent.
func enrichAlertStatus(recs []map[string]any, valueKey string, t *alert.Thresholds) {
	if t.Empty() {
		return
	}
	for _, rec := range recs {
		if level, ok := alert.Classify(valueOf(rec, valueKey), t); ok {
			rec["alert_status"] = string(level)
		}
	}
}

// pageOf slices a record list for 1-based pagination and returns a summary
// block with page statistics over the primary value.
func (r *Registry) pageOf(recs []map[string]any, schema hrfco.Schema, page, perPage int) ([]map[string]any, map[string]any) {
	if perPage <= 0 {
		perPage = r.cfg.Tools.DefaultPageSize
	}
	if perPage > r.cfg.Tools.MaxPageSize {
		perPage = r.cfg.Tools.MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(recs)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	startIdx := (page - 1) * perPage
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + perPage
	if endIdx > total {
		endIdx = total
	}
	pageRecs := recs[startIdx:endIdx]

	summary := map[string]any{
		"total_count": total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages,
	}
	if stats := seriesStats(pageRecs, schema.ValueKey); stats != nil {
		summary["page_stats"] = stats
	}
	if counts := alertCounts(pageRecs); len(counts) > 0 {
		summary["alert_counts"] = counts
	}
	return pageRecs, summary
}

// alertCounts tallies enriched alert statuses on the page.
func alertCounts(recs []map[string]any) map[string]int {
	counts := make(map[string]int)
	for _, rec := range recs {
		if s, ok := rec["alert_status"].(string); ok {
			counts[s]++
		}
	}
	return counts
}

// seriesStats computes min/max/mean/latest over the primary value of a
// record list. Nil when no record carries a readable value.
func seriesStats(recs []map[string]any, valueKey string) map[string]any {
	var (
		minV, maxV, sum float64
		latest          *float64
		latestAt        string
		n               int
	)
	for _, rec := range recs {
		v := valueOf(rec, valueKey)
		if v == nil {
			continue
		}
		if n == 0 || *v < minV {
			minV = *v
		}
		if n == 0 || *v > maxV {
			maxV = *v
		}
		sum += *v
		n++
		latest, latestAt = v, timestampOf(rec)
	}
	if n == 0 {
		return nil
	}
	return map[string]any{
		"count":     n,
		"min":       minV,
		"max":       maxV,
		"mean":      round3(sum / float64(n)),
		"latest":    *latest,
		"latest_at": latestAt,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// stationSummary is the catalog detail block attached to data responses.
func stationSummary(st *catalog.Station) map[string]any {
	out := map[string]any{
		"code": st.Code.String(),
		"name": st.Name,
	}
	if st.Agency != "" {
		out["agency"] = st.Agency
	}
	if st.Address != "" {
		out["address"] = st.Address
	}
	if st.HasCoords {
		out["lat"] = st.Lat
		out["lon"] = st.Lon
	}
	if st.SubBasin != "" {
		out["sub_basin"] = st.SubBasin
	}
	if st.Thresholds != nil {
		out["thresholds"] = st.Thresholds
	}
	return out
}
