package pagos

import (
	"encoding/json"
	"strconv"
)

// Loose accessors over decoded provider payloads. Providers disagree about
// types (numeric ids as numbers or strings, flags as bools or "1"), so
// drivers read fields through these instead of bare type assertions.

// StringField returns m[key] as a string, rendering numeric values, or ""
// when absent.
func StringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// BoolField returns m[key] as a bool, false when absent or not a bool.
func BoolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// MapField returns m[key] as a nested object, nil when absent.
func MapField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}
