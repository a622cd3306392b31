package gateway

import (
	"net/http"
	"strconv"
	"time"
)

// registerRoutes sets up all HTTP routes on the server mux. REST routes are
// thin shims: each translates query parameters into tool arguments and
// dispatches through the same registry as the stdio transport.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /mcp", s.handleMCP)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /observatories", s.handleObservatories)
	mux.HandleFunc("GET /observatories/search", s.handleObservatorySearch)
	mux.HandleFunc("GET /hydro", s.handleHydro)
	mux.HandleFunc("GET /hydro/recent", s.handleHydroRecent)
	mux.HandleFunc("GET /hydro/nearby", s.handleHydroNearby)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"tools":          s.registry.Names(),
	})
}

func (s *Server) handleObservatories(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{
		"category": r.URL.Query().Get("category"),
	}
	copyQueryArg(r, args, "station")
	copyNumericArg(r, args, "page")
	copyNumericArg(r, args, "per_page")
	s.callTool(w, r, "get_observatory_info", args)
}

func (s *Server) handleObservatorySearch(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{
		"query": r.URL.Query().Get("query"),
	}
	copyQueryArg(r, args, "category")
	copyNumericArg(r, args, "page")
	copyNumericArg(r, args, "per_page")
	s.callTool(w, r, "search_observatory", args)
}

func (s *Server) handleHydro(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{
		"category": r.URL.Query().Get("category"),
		"station":  r.URL.Query().Get("station"),
	}
	copyQueryArg(r, args, "granularity")
	copyQueryArg(r, args, "start")
	copyQueryArg(r, args, "end")
	copyNumericArg(r, args, "page")
	copyNumericArg(r, args, "per_page")
	s.callTool(w, r, "get_hydro_data", args)
}

func (s *Server) handleHydroRecent(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{
		"category": r.URL.Query().Get("category"),
		"station":  r.URL.Query().Get("station"),
	}
	copyQueryArg(r, args, "granularity")
	copyNumericArg(r, args, "count")
	s.callTool(w, r, "get_recent_data", args)
}

func (s *Server) handleHydroNearby(w http.ResponseWriter, r *http.Request) {
	args := map[string]any{}
	copyQueryArg(r, args, "address")
	copyQueryArg(r, args, "category")
	copyNumericArg(r, args, "lat")
	copyNumericArg(r, args, "lon")
	copyNumericArg(r, args, "radius_km")
	copyNumericArg(r, args, "count")
	s.callTool(w, r, "get_hydro_data_nearby", args)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

func copyQueryArg(r *http.Request, args map[string]any, name string) {
	if v := r.URL.Query().Get(name); v != "" {
		args[name] = v
	}
}

// copyNumericArg forwards a numeric query parameter as float64, matching
// the JSON number decoding the registry's validator expects.
func copyNumericArg(r *http.Request, args map[string]any, name string) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		args[name] = f
	} else {
		args[name] = v // let schema validation report the type problem
	}
}
