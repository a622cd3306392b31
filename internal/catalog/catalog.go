// Package catalog maintains in-memory station directories for each
// observation category, refreshed lazily from the upstream info endpoints.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/alert"
	"github.com/hydroseo/hrfco-mcp/internal/geo"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

// Station is one observatory from a category's info feed. Coordinates are
// decimal degrees; HasCoords distinguishes a real (0,0) from missing data.
// Thresholds is nil for categories without alert levels.
type Station struct {
	Code      hrfco.StationCode `json:"code"`
	Name      string            `json:"name"`
	Agency    string            `json:"agency,omitempty"`
	Address   string            `json:"address,omitempty"`
	Lat       float64           `json:"lat,omitempty"`
	Lon       float64           `json:"lon,omitempty"`
	HasCoords bool              `json:"has_coords"`
	SubBasin  string            `json:"sub_basin,omitempty"`

	Thresholds *alert.Thresholds `json:"thresholds,omitempty"`
}

type snapshot struct {
	fetchedAt time.Time
	stations  []Station
	byCode    map[hrfco.StationCode]*Station
	byName    map[string]hrfco.StationCode // lowercased exact name
}

// holder is one category's snapshot slot. Readers load the pointer without
// any lock; fetchMu only serializes refreshes of this category so concurrent
// stale readers share a single upstream fetch.
type holder struct {
	snap    atomic.Pointer[snapshot]
	fetchMu sync.Mutex
}

// Catalog caches one snapshot per category and refreshes it when stale.
// Snapshots are immutable once published and swapped atomically, so a
// refresh in one category never blocks lookups in any category.
type Catalog struct {
	client  *hrfco.Client
	refresh time.Duration
	log     *logging.Logger

	cats map[hrfco.Category]*holder
}

// New builds a catalog over the given upstream client.
func New(client *hrfco.Client, refresh time.Duration, log *logging.Logger) *Catalog {
	cats := make(map[hrfco.Category]*holder, len(hrfco.Categories))
	for _, cat := range hrfco.Categories {
		cats[cat] = &holder{}
	}
	return &Catalog{
		client:  client,
		refresh: refresh,
		log:     log.Sub("catalog"),
		cats:    cats,
	}
}

// snapshotFor returns a fresh-enough snapshot for the category, fetching and
// rebuilding it when missing or stale. A stale snapshot is kept when the
// refresh fails so transient upstream trouble does not blank the directory.
func (c *Catalog) snapshotFor(ctx context.Context, cat hrfco.Category) (*snapshot, error) {
	h, ok := c.cats[cat]
	if !ok {
		return nil, hrfco.Internalf("no catalog slot for category %q", cat)
	}

	if snap := h.snap.Load(); snap != nil && time.Since(snap.fetchedAt) < c.refresh {
		return snap, nil
	}

	h.fetchMu.Lock()
	defer h.fetchMu.Unlock()

	// Someone else may have refreshed while we waited for the fetch lock.
	if snap := h.snap.Load(); snap != nil && time.Since(snap.fetchedAt) < c.refresh {
		return snap, nil
	}

	payload, err := c.client.FetchInfo(ctx, cat)
	if err != nil {
		if snap := h.snap.Load(); snap != nil {
			c.log.Warn().Str("category", string(cat)).Err(err).Msg("refresh failed; serving stale snapshot")
			return snap, nil
		}
		return nil, err
	}

	snap := buildSnapshot(cat, payload, c.log)
	h.snap.Store(snap)
	c.log.Info().Str("category", string(cat)).Int("stations", len(snap.stations)).Msg("catalog refreshed")
	return snap, nil
}

func buildSnapshot(cat hrfco.Category, payload map[string]any, log *logging.Logger) *snapshot {
	snap := &snapshot{
		fetchedAt: time.Now(),
		byCode:    make(map[hrfco.StationCode]*Station),
		byName:    make(map[string]hrfco.StationCode),
	}

	content, _ := payload["content"].([]any)
	schema := cat.Schema()
	for _, raw := range content {
		rec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		code := stringField(rec, schema.CodeKey)
		if code == "" {
			continue
		}

		st := Station{
			Code:     hrfco.StationCode(code),
			Name:     stringField(rec, "obsnm"),
			Agency:   stringField(rec, "agcnm"),
			Address:  joinAddress(stringField(rec, "addr"), stringField(rec, "etcaddr")),
			SubBasin: stringField(rec, "sbsncd"),
		}

		lat, latErr := geo.ParseDMS(stringField(rec, "lat"))
		lon, lonErr := geo.ParseDMS(stringField(rec, "lon"))
		if latErr == nil && lonErr == nil {
			st.Lat, st.Lon, st.HasCoords = lat, lon, true
		}

		if len(schema.AlertKeys) > 0 {
			st.Thresholds = parseThresholds(rec, schema.AlertKeys)
			if st.Thresholds != nil && !st.Thresholds.Ordered() {
				log.Warn().Str("station", code).Msg("alert thresholds out of order")
			}
		}

		snap.stations = append(snap.stations, st)
	}

	sort.Slice(snap.stations, func(i, j int) bool {
		return snap.stations[i].Code < snap.stations[j].Code
	})
	for i := range snap.stations {
		st := &snap.stations[i]
		snap.byCode[st.Code] = st
		if st.Name == "" {
			continue
		}
		key := strings.ToLower(st.Name)
		if prev, dup := snap.byName[key]; dup {
			log.Warn().Str("name", st.Name).
				Str("kept", st.Code.String()).
				Str("shadowed", prev.String()).
				Msg("duplicate station name; last one wins")
		}
		snap.byName[key] = st.Code
	}
	return snap
}

func parseThresholds(rec map[string]any, keys map[string]string) *alert.Thresholds {
	get := func(level string) *float64 {
		key, ok := keys[level]
		if !ok {
			return nil
		}
		return floatField(rec, key)
	}
	t := &alert.Thresholds{
		Attention: get("attention"),
		Warning:   get("warning"),
		Alarm:     get("alarm"),
		Serious:   get("serious"),
		PlanFlood: get("plan_flood"),
	}
	if t.Empty() && t.PlanFlood == nil {
		return nil
	}
	return t
}

// Freshness reports the age in seconds of each loaded category snapshot.
// Categories never accessed are absent.
func (c *Catalog) Freshness() map[string]int {
	out := make(map[string]int, len(c.cats))
	for cat, h := range c.cats {
		if snap := h.snap.Load(); snap != nil {
			out[string(cat)] = int(time.Since(snap.fetchedAt).Seconds())
		}
	}
	return out
}

// Stations returns the category's full station list.
func (c *Catalog) Stations(ctx context.Context, cat hrfco.Category) ([]Station, error) {
	snap, err := c.snapshotFor(ctx, cat)
	if err != nil {
		return nil, err
	}
	return snap.stations, nil
}

// Resolve maps a code or station name to its Station. Lookup order: exact
// code, exact name, case-insensitive name. Unknown identifiers produce an
// observatory error carrying up to five near-miss suggestions.
func (c *Catalog) Resolve(ctx context.Context, cat hrfco.Category, ident string) (*Station, error) {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil, hrfco.Validationf("observatory identifier must not be empty")
	}

	snap, err := c.snapshotFor(ctx, cat)
	if err != nil {
		return nil, err
	}

	if st, ok := snap.byCode[hrfco.StationCode(ident)]; ok {
		return st, nil
	}
	if code, ok := snap.byName[strings.ToLower(ident)]; ok {
		return snap.byCode[code], nil
	}

	suggestions := make([]string, 0, 5)
	lower := strings.ToLower(ident)
	for _, st := range snap.stations {
		if strings.Contains(strings.ToLower(st.Name), lower) {
			suggestions = append(suggestions, st.Name)
			if len(suggestions) == 5 {
				break
			}
		}
	}
	if len(suggestions) > 0 {
		return nil, hrfco.Observatoryf("unknown %s observatory %q (did you mean: %s)",
			cat, ident, strings.Join(suggestions, ", "))
	}
	return nil, hrfco.Observatoryf("unknown %s observatory %q", cat, ident)
}

// Search finds stations whose name, address, or code contains the query,
// ranked exact-name, then name-substring, then address-or-code-substring.
// Ties keep code order. offset/limit page the ranked result; total is the
// full match count before paging.
func (c *Catalog) Search(ctx context.Context, cat hrfco.Category, query string, offset, limit int) ([]Station, int, error) {
	snap, err := c.snapshotFor(ctx, cat)
	if err != nil {
		return nil, 0, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	type ranked struct {
		st   Station
		rank int
	}
	var matches []ranked
	for _, st := range snap.stations {
		name := strings.ToLower(st.Name)
		switch {
		case q == "":
			matches = append(matches, ranked{st, 2})
		case name == q:
			matches = append(matches, ranked{st, 0})
		case strings.Contains(name, q):
			matches = append(matches, ranked{st, 1})
		case strings.Contains(strings.ToLower(st.Address), q) ||
			strings.Contains(strings.ToLower(st.Code.String()), q):
			matches = append(matches, ranked{st, 2})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	total := len(matches)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]Station, 0, end-offset)
	for _, m := range matches[offset:end] {
		out = append(out, m.st)
	}
	return out, total, nil
}

// Nearby returns stations with known coordinates within radiusKm of the
// point, nearest first, capped at limit when limit > 0.
func (c *Catalog) Nearby(ctx context.Context, cat hrfco.Category, lat, lon, radiusKm float64, limit int) ([]StationDistance, error) {
	snap, err := c.snapshotFor(ctx, cat)
	if err != nil {
		return nil, err
	}

	var out []StationDistance
	for _, st := range snap.stations {
		if !st.HasCoords {
			continue
		}
		d := geo.Haversine(lat, lon, st.Lat, st.Lon)
		if d <= radiusKm {
			out = append(out, StationDistance{Station: st, DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// StationDistance pairs a station with its distance from a query point.
type StationDistance struct {
	Station    Station `json:"station"`
	DistanceKm float64 `json:"distance_km"`
}

func stringField(rec map[string]any, key string) string {
	if key == "" {
		return ""
	}
	v, ok := rec[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// floatField reads a numeric field that upstream may encode as a number or a
// string. Blank and unparseable values mean the threshold is not set.
func floatField(rec map[string]any, key string) *float64 {
	v, ok := rec[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		s := strings.TrimSpace(n)
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

func joinAddress(addr, etc string) string {
	switch {
	case addr == "":
		return etc
	case etc == "":
		return addr
	default:
		return addr + " " + etc
	}
}
