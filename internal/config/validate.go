package config

// Issue describes a single config validation problem.
type Issue struct {
	Path    string
	Message string
}

// Validate checks the config for fatal problems. The API key is mandatory:
// without it every upstream request would fail, so the process refuses to
// start (fail closed).
func Validate(cfg *Config) []Issue {
	var issues []Issue

	if cfg.Upstream.APIKey == "" || cfg.Upstream.APIKey == "your-api-key-here" {
		issues = append(issues, Issue{
			Path:    "upstream.apiKey",
			Message: "HRFCO_API_KEY is not set; the upstream API requires a credential",
		})
	}
	if cfg.Upstream.MaxConcurrent < 1 {
		issues = append(issues, Issue{
			Path:    "upstream.maxConcurrent",
			Message: "maxConcurrent must be at least 1",
		})
	}
	if cfg.Upstream.TimeoutSeconds < 1 {
		issues = append(issues, Issue{
			Path:    "upstream.timeoutSeconds",
			Message: "timeoutSeconds must be at least 1",
		})
	}
	if cfg.Cache.TTLSeconds < 0 {
		issues = append(issues, Issue{
			Path:    "cache.ttlSeconds",
			Message: "ttlSeconds must not be negative",
		})
	}
	switch cfg.Gateway.Bind {
	case "loopback", "lan", "custom":
	default:
		issues = append(issues, Issue{
			Path:    "gateway.bind",
			Message: "bind must be one of loopback, lan, custom",
		})
	}
	if cfg.Tools.MaxPageSize < cfg.Tools.DefaultPageSize {
		issues = append(issues, Issue{
			Path:    "tools.maxPageSize",
			Message: "maxPageSize must not be smaller than defaultPageSize",
		})
	}
	return issues
}
