// Package processors contains the built-in processors seeded at startup.
// Each one only honors the single processor contract; the scheduler core
// never depends on this package.
package processors

// intValue reads an integer out of an opaque job config. JSON-decoded
// numbers arrive as float64, so both forms are accepted.
func intValue(config map[string]any, key string, fallback int) int {
	raw, ok := config[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// stringsValue reads a list of strings out of an opaque job config,
// tolerating []any from JSON decoding.
func stringsValue(config map[string]any, key string) []string {
	raw, ok := config[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
