package tools

func float64p(v float64) *float64 { return &v }

var (
	categoryProp = Property{
		Type:        "string",
		Description: "Observation category",
		Enum:        []string{"waterlevel", "rainfall", "dam", "weir"},
	}
	granularityProp = Property{
		Type:        "string",
		Description: "Time resolution of the series",
		Enum:        []string{"10M", "1H", "1D"},
		Default:     "1H",
	}
	stationProp = Property{
		Type:        "string",
		Description: "Station code or exact station name",
	}
	startProp = Property{
		Type:        "string",
		Description: "Range start: YYYYMMDD, YYYY-MM-DD, 'yesterday', '3 days ago', ...",
	}
	endProp = Property{
		Type:        "string",
		Description: "Range end, same forms as start",
	}
	fieldsProp = Property{
		Type:        "array",
		Items:       "string",
		Description: "Optional column projection; defaults to the category's standard fields",
	}
	pageProp = Property{
		Type:        "integer",
		Description: "1-based result page",
		Minimum:     float64p(1),
	}
	perPageProp = Property{
		Type:        "integer",
		Description: "Records per page",
		Minimum:     float64p(1),
	}
)

func (r *Registry) registerAll() {
	r.register(Tool{
		Name:        "list_tools",
		Description: "List every available tool with its input schema, plus server status.",
		InputSchema: InputSchema{Type: "object", Properties: map[string]Property{}, Required: []string{}},
	}, r.listTools)

	r.register(Tool{
		Name:        "server_health",
		Description: "Liveness signal: uptime, cache statistics, and catalog freshness per category.",
		InputSchema: InputSchema{Type: "object", Properties: map[string]Property{}, Required: []string{}},
	}, r.serverHealth)

	r.register(Tool{
		Name:        "get_server_config",
		Description: "Effective server configuration (credentials redacted), category schemas, and granularity limits.",
		InputSchema: InputSchema{Type: "object", Properties: map[string]Property{}, Required: []string{}},
	}, r.serverConfig)

	r.register(Tool{
		Name:        "search_observatory",
		Description: "Search observatories by name, address, or code. Exact name matches rank first.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"query":    {Type: "string", Description: "Search text (station name, address fragment, or code)"},
				"category": categoryProp,
				"page":     pageProp,
				"per_page": perPageProp,
			},
			Required: []string{"query"},
		},
	}, r.searchObservatory)

	r.register(Tool{
		Name:        "get_observatory_info",
		Description: "List a category's observatories with coordinates and alert thresholds, paginated. Pass 'station' for a single station's detail.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"category": categoryProp,
				"station":  stationProp,
				"page":     pageProp,
				"per_page": perPageProp,
			},
			Required: []string{"category"},
		},
	}, r.observatoryInfo)

	r.register(Tool{
		Name:        "get_hydro_data",
		Description: "Time-series observations for a station over a date range. Water-level records carry an alert_status derived from the station's thresholds.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"category":    categoryProp,
				"station":     stationProp,
				"granularity": granularityProp,
				"start":       startProp,
				"end":         endProp,
				"fields":      fieldsProp,
				"page":        pageProp,
				"per_page":    perPageProp,
			},
			Required: []string{"category", "station"},
		},
	}, r.hydroData)

	r.register(Tool{
		Name:        "get_recent_data",
		Description: "The most recent N observations for a station.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"category":    categoryProp,
				"station":     stationProp,
				"granularity": granularityProp,
				"count": {
					Type:        "integer",
					Description: "Number of most recent records to return",
					Minimum:     float64p(1),
				},
				"fields": fieldsProp,
			},
			Required: []string{"category", "station"},
		},
	}, r.recentData)

	r.register(Tool{
		Name:        "get_batch_hydro_data",
		Description: "Run several get_hydro_data requests concurrently. Results are keyed by each request's id; one failure does not affect siblings.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"requests": {
					Type:        "array",
					Items:       "object",
					Description: "Sub-requests, each with an id plus get_hydro_data arguments",
				},
			},
			Required: []string{"requests"},
		},
	}, r.batchHydroData)

	r.register(Tool{
		Name:        "get_hydro_data_nearby",
		Description: "Stations near an address or coordinate, with their latest observations, sorted by distance.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"address":   {Type: "string", Description: "Korean place name or address (e.g. '세종 반곡동')"},
				"lat":       {Type: "number", Description: "Latitude, decimal degrees", Minimum: float64p(-90), Maximum: float64p(90)},
				"lon":       {Type: "number", Description: "Longitude, decimal degrees", Minimum: float64p(-180), Maximum: float64p(180)},
				"category":  categoryProp,
				"radius_km": {Type: "number", Description: "Search radius in kilometers", Minimum: float64p(0.1), Maximum: float64p(200), Default: "10"},
				"count":     {Type: "integer", Description: "Maximum stations to return", Minimum: float64p(1)},
			},
			Required: []string{},
		},
	}, r.hydroDataNearby)

	r.register(Tool{
		Name:        "analyze_water_level_with_thresholds",
		Description: "Water-level series with per-threshold exceedance analysis and trend for one station.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"station": stationProp,
				"hours": {
					Type:        "integer",
					Description: "Lookback window in hours",
					Minimum:     float64p(1),
					Maximum:     float64p(8784),
					Default:     "24",
				},
				"granularity": granularityProp,
			},
			Required: []string{"station"},
		},
	}, r.analyzeWaterLevel)

	r.register(Tool{
		Name:        "get_alert_status_summary",
		Description: "Count water-level stations by current alert level, listing every station above normal.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"region": {Type: "string", Description: "Optional address fragment to restrict the summary"},
			},
			Required: []string{},
		},
	}, r.alertStatusSummary)

	r.register(Tool{
		Name:        "get_basin_comprehensive_analysis",
		Description: "Basin context for a water-level station: same-basin, upstream, and downstream neighbors with recent-series summaries and alert states.",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]Property{
				"station": stationProp,
				"radius_km": {
					Type:        "number",
					Description: "Also include stations within this radius of the centre",
					Minimum:     float64p(0.1),
					Maximum:     float64p(200),
				},
				"categories": {
					Type:        "array",
					Items:       "string",
					Description: "Categories to include in the radius scan (default waterlevel and rainfall)",
				},
			},
			Required: []string{"station"},
		},
	}, r.basinAnalysis)
}
