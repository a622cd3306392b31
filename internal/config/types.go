package config

// Config is the root configuration for the HRFCO MCP server.
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Catalog  CatalogConfig  `yaml:"catalog,omitempty"`
	Gateway  GatewayConfig  `yaml:"gateway,omitempty"`
	Tools    ToolsConfig    `yaml:"tools,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// UpstreamConfig controls access to the HRFCO HTTP API.
type UpstreamConfig struct {
	BaseURL        string  `yaml:"baseUrl,omitempty"`
	APIKey         string  `yaml:"apiKey,omitempty"` // may be ${HRFCO_API_KEY}
	TimeoutSeconds int     `yaml:"timeoutSeconds,omitempty"`
	MaxConcurrent  int     `yaml:"maxConcurrent,omitempty"`
	RateLimitRPS   float64 `yaml:"rateLimitRps,omitempty"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	TTLSeconds     int `yaml:"ttlSeconds,omitempty"`
	SweepSeconds   int `yaml:"sweepSeconds,omitempty"`
	SweepThreshold int `yaml:"sweepThreshold,omitempty"`
}

// CatalogConfig controls the station catalog refresh cycle.
type CatalogConfig struct {
	RefreshSeconds int `yaml:"refreshSeconds,omitempty"`
}

// GatewayConfig controls the HTTP gateway front end.
type GatewayConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// ToolsConfig bounds tool-level behavior.
type ToolsConfig struct {
	HandlerTimeoutSeconds int `yaml:"handlerTimeoutSeconds,omitempty"`
	MaxRecentCount        int `yaml:"maxRecentCount,omitempty"`
	DefaultPageSize       int `yaml:"defaultPageSize,omitempty"`
	MaxPageSize           int `yaml:"maxPageSize,omitempty"`
	MaxBatchRequests      int `yaml:"maxBatchRequests,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
