// Package tools binds tool names to handlers, validates arguments against
// declared schemas, and executes handlers under a deadline. Both the stdio
// MCP transport and the HTTP gateway dispatch through this registry.
package tools

import (
	"context"
	"sort"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/catalog"
	"github.com/hydroseo/hrfco-mcp/internal/config"
	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

// Tool describes one callable tool for tools/list.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema is a restricted JSON schema: object type, flat properties.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property declares one argument: its type, allowed values, and bounds.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Items       string   `json:"items,omitempty"`
}

// Handler executes one tool call with validated arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type registration struct {
	tool    Tool
	handler Handler
}

// Registry holds the tool set and the shared service components handlers
// run against.
type Registry struct {
	client    *hrfco.Client
	catalog   *catalog.Catalog
	cfg       *config.Config
	log       *logging.Logger
	startedAt time.Time

	tools map[string]registration
	order []string
}

// NewRegistry wires the full tool set over the given components.
func NewRegistry(client *hrfco.Client, cat *catalog.Catalog, cfg *config.Config, log *logging.Logger) *Registry {
	r := &Registry{
		client:    client,
		catalog:   cat,
		cfg:       cfg,
		log:       log.Sub("tools"),
		startedAt: time.Now(),
		tools:     make(map[string]registration),
	}
	r.registerAll()
	return r
}

func (r *Registry) register(t Tool, h Handler) {
	r.tools[t.Name] = registration{tool: t, handler: h}
	r.order = append(r.order, t.Name)
}

// Definitions returns the tool catalog in registration order.
func (r *Registry) Definitions() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].tool)
	}
	return out
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Call validates arguments against the tool's schema and runs the handler
// under the configured deadline. Unknown tools and schema violations return
// validation errors; handler errors pass through with their kind intact.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	reg, ok := r.tools[name]
	if !ok {
		return nil, hrfco.Validationf("unknown tool %q", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := validateArgs(reg.tool.InputSchema, args); err != nil {
		return nil, err
	}

	timeout := time.Duration(r.cfg.Tools.HandlerTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	result, err := reg.handler(ctx, args)
	elapsed := time.Since(start)
	if err != nil {
		r.log.Warn().Str("tool", name).Dur("elapsed", elapsed).Err(err).Msg("tool call failed")
		return nil, err
	}
	r.log.Debug().Str("tool", name).Dur("elapsed", elapsed).Msg("tool call ok")
	return result, nil
}
