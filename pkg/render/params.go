package render

import "github.com/dashweave/dashweave/pkg/content"

// stringParam returns a string-valued parameter, or "" when absent or not
// a string.
func stringParam(p content.Params, key string) string {
	s, _ := p[key].(string)
	return s
}

// stringsParam returns a list-valued parameter. Single strings are
// promoted to a one-element list; []any lists keep only their string
// elements (the decoded form of JSON and TOML arrays).
func stringsParam(p content.Params, key string) []string {
	switch v := p[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// intParam returns an integer-valued parameter, or def when absent or not
// numeric. JSON decoding produces float64, TOML int64; both are accepted.
func intParam(p content.Params, key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
