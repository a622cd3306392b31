package cli

import (
	"fmt"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
	"github.com/hydroseo/hrfco-mcp/internal/tools"
)

// service bundles the wired components every command needs. There is no
// package-level mutable state; each command builds and tears down its own.
type service struct {
	cfg      config.Config
	client   *hrfco.Client
	catalog  *catalog.Catalog
	registry *tools.Registry
}

// buildService loads and validates config, then wires cache, client,
// catalog, and the tool registry.
func buildService(log *logging.Logger) (*service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	issues := config.Validate(&cfg)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return nil, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}

	cache := hrfco.NewTTLCache(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		time.Duration(cfg.Cache.SweepSeconds)*time.Second,
		cfg.Cache.SweepThreshold,
		log,
	)
	client := hrfco.NewClient(cfg.Upstream, cache, log)
	cat := catalog.New(client, time.Duration(cfg.Catalog.RefreshSeconds)*time.Second, log)
	registry := tools.NewRegistry(client, cat, &cfg, log)

	return &service{
		cfg:      cfg,
		client:   client,
		catalog:  cat,
		registry: registry,
	}, nil
}

func (s *service) Close() {
	s.client.Close()
}
