package resolver

// Typed views over resolved values. Each returns ok=false for nil (absent)
// and for values of another type.

// String returns v as a string
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Uint64 returns v as a uint64
func Uint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// Bool returns v as a bool
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Strings returns v as a string slice
func Strings(v any) ([]string, bool) {
	s, ok := v.([]string)
	return s, ok
}

// Set stores v under sub only when present is true, leaving the slot nil
// otherwise. Acquisitions use it to keep absent data absent.
func (v Values) Set(sub SubValue, value any, present bool) {
	if present {
		v[sub] = value
	}
}
