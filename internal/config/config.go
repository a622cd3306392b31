package config

import "fmt"

// DefaultBaseURL is the production HRFCO API endpoint.
const DefaultBaseURL = "http://api.hrfco.go.kr"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Upstream: UpstreamConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
			MaxConcurrent:  5,
			RateLimitRPS:   20,
		},
		Cache: CacheConfig{
			TTLSeconds:     300,
			SweepSeconds:   600,
			SweepThreshold: 1000,
		},
		Catalog: CatalogConfig{
			RefreshSeconds: 21600,
		},
		Gateway: GatewayConfig{
			Port: 18790,
			Bind: "loopback",
		},
		Tools: ToolsConfig{
			HandlerTimeoutSeconds: 60,
			MaxRecentCount:        500,
			DefaultPageSize:       50,
			MaxPageSize:           100,
			MaxBatchRequests:      20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
