package tools

import (
	"strings"

	"github.com/hydroseo/hrfco-mcp/internal/hrfco"
)

// validateArgs checks an argument object against a declared schema:
// required fields present, enum membership, numeric bounds. Unknown
// arguments are tolerated and ignored by handlers.
func validateArgs(schema InputSchema, args map[string]any) error {
	for _, name := range schema.Required {
		v, ok := args[name]
		if !ok || v == nil {
			return hrfco.Validationf("missing required argument %q", name)
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return hrfco.Validationf("required argument %q must not be empty", name)
		}
	}

	for name, prop := range schema.Properties {
		v, ok := args[name]
		if !ok || v == nil {
			continue
		}
		if err := validateValue(name, prop, v); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(name string, prop Property, v any) error {
	switch prop.Type {
	case "string":
		s, ok := v.(string)
		if !ok {
			return hrfco.Validationf("argument %q must be a string", name)
		}
		if len(prop.Enum) > 0 && !enumContains(prop.Enum, s) {
			return hrfco.Validationf("argument %q must be one of %s",
				name, strings.Join(prop.Enum, ", "))
		}
	case "number", "integer":
		n, ok := v.(float64)
		if !ok {
			return hrfco.Validationf("argument %q must be a number", name)
		}
		if prop.Minimum != nil && n < *prop.Minimum {
			return hrfco.Validationf("argument %q must be >= %g", name, *prop.Minimum)
		}
		if prop.Maximum != nil && n > *prop.Maximum {
			return hrfco.Validationf("argument %q must be <= %g", name, *prop.Maximum)
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return hrfco.Validationf("argument %q must be a boolean", name)
		}
	case "array":
		if _, ok := v.([]any); !ok {
			return hrfco.Validationf("argument %q must be an array", name)
		}
	}
	return nil
}

func enumContains(enum []string, s string) bool {
	for _, e := range enum {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}

// Argument readers. JSON numbers arrive as float64; these tolerate the
// string encodings agents often send.

func stringArg(args map[string]any, name, fallback string) string {
	if v, ok := args[name].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return fallback
		}
		n := 0
		for _, r := range s {
			if r < '0' || r > '9' {
				return fallback
			}
			n = n*10 + int(r-'0')
		}
		return n
	default:
		return fallback
	}
}

func floatArg(args map[string]any, name string, fallback float64) float64 {
	if v, ok := args[name].(float64); ok {
		return v
	}
	return fallback
}
