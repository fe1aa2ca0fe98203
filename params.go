package toolbridge

import "github.com/spf13/cast"

// Typed accessors over the map[string]any params passed to tool handlers.
// Values are coerced with weak typing: "42" satisfies IntParam, 1 satisfies
// BoolParam. The ok result is false when the key is absent or the value
// cannot be coerced.

// StringParam returns params[key] as a string.
func StringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}

	s, err := cast.ToStringE(v)

	return s, err == nil
}

// IntParam returns params[key] as an int.
func IntParam(params map[string]any, key string) (int, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}

	n, err := cast.ToIntE(v)

	return n, err == nil
}

// FloatParam returns params[key] as a float64.
func FloatParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}

	f, err := cast.ToFloat64E(v)

	return f, err == nil
}

// BoolParam returns params[key] as a bool.
func BoolParam(params map[string]any, key string) (bool, bool) {
	v, ok := params[key]
	if !ok {
		return false, false
	}

	b, err := cast.ToBoolE(v)

	return b, err == nil
}

// StringSliceParam returns params[key] as a []string.
func StringSliceParam(params map[string]any, key string) ([]string, bool) {
	v, ok := params[key]
	if !ok {
		return nil, false
	}

	s, err := cast.ToStringSliceE(v)

	return s, err == nil
}
