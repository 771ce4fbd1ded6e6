package validate

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Coercion happens before any range check, so "12.5" and 12.5 behave
// identically and error messages reference the coerced value.

// coerceNumber converts native JSON numbers and numeric-looking strings to
// float64.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceDate converts RFC3339 timestamps, "YYYY-MM-DD" strings, and numeric
// Unix-millisecond epochs to a time.Time.
func coerceDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		s := strings.TrimSpace(d)
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(d)).UTC(), true
	case int64:
		return time.UnixMilli(d).UTC(), true
	case json.Number:
		ms, err := d.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	default:
		return time.Time{}, false
	}
}

// coerceString returns the value as a string. Only genuine strings pass;
// numbers are not stringified.
func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
