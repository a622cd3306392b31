package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only. A .env file in the
// working directory is loaded first so HRFCO_API_KEY can live there.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cfg.Upstream.APIKey = expandEnvVars(cfg.Upstream.APIKey)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = def.Upstream.BaseURL
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = def.Upstream.TimeoutSeconds
	}
	if cfg.Upstream.MaxConcurrent == 0 {
		cfg.Upstream.MaxConcurrent = def.Upstream.MaxConcurrent
	}
	if cfg.Upstream.RateLimitRPS == 0 {
		cfg.Upstream.RateLimitRPS = def.Upstream.RateLimitRPS
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = def.Cache.TTLSeconds
	}
	if cfg.Cache.SweepSeconds == 0 {
		cfg.Cache.SweepSeconds = def.Cache.SweepSeconds
	}
	if cfg.Cache.SweepThreshold == 0 {
		cfg.Cache.SweepThreshold = def.Cache.SweepThreshold
	}
	if cfg.Catalog.RefreshSeconds == 0 {
		cfg.Catalog.RefreshSeconds = def.Catalog.RefreshSeconds
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = def.Gateway.Port
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = def.Gateway.Bind
	}
	if cfg.Tools.HandlerTimeoutSeconds == 0 {
		cfg.Tools.HandlerTimeoutSeconds = def.Tools.HandlerTimeoutSeconds
	}
	if cfg.Tools.MaxRecentCount == 0 {
		cfg.Tools.MaxRecentCount = def.Tools.MaxRecentCount
	}
	if cfg.Tools.DefaultPageSize == 0 {
		cfg.Tools.DefaultPageSize = def.Tools.DefaultPageSize
	}
	if cfg.Tools.MaxPageSize == 0 {
		cfg.Tools.MaxPageSize = def.Tools.MaxPageSize
	}
	if cfg.Tools.MaxBatchRequests == 0 {
		cfg.Tools.MaxBatchRequests = def.Tools.MaxBatchRequests
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// applyEnvOverrides reads the documented environment variables and overrides
// config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HRFCO_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := os.Getenv("HRFCO_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSeconds = n
		}
	}
	if v := os.Getenv("MAX_CONCURRENT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Upstream.MaxConcurrent = n
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Upstream.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("OBSERVATORY_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.RefreshSeconds = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = n
		}
	}
}
