package toolbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringParam(t *testing.T) {
	params := map[string]any{"name": "title", "count": 3}

	s, ok := StringParam(params, "name")
	assert.True(t, ok)
	assert.Equal(t, "title", s)

	s, ok = StringParam(params, "count")
	assert.True(t, ok, "weak typing coerces numbers")
	assert.Equal(t, "3", s)

	_, ok = StringParam(params, "absent")
	assert.False(t, ok)
}

func TestIntParam(t *testing.T) {
	// JSON decoding yields float64 for numbers.
	params := map[string]any{"limit": float64(10), "text": "42", "bad": "nope"}

	n, ok := IntParam(params, "limit")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, ok = IntParam(params, "text")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = IntParam(params, "bad")
	assert.False(t, ok)

	_, ok = IntParam(params, "absent")
	assert.False(t, ok)
}

func TestFloatParam(t *testing.T) {
	params := map[string]any{"ratio": 0.5}

	f, ok := FloatParam(params, "ratio")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-9)
}

func TestBoolParam(t *testing.T) {
	params := map[string]any{"enabled": true, "numeric": float64(1)}

	b, ok := BoolParam(params, "enabled")
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = BoolParam(params, "numeric")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = BoolParam(params, "absent")
	assert.False(t, ok)
}

func TestStringSliceParam(t *testing.T) {
	params := map[string]any{"tags": []any{"a", "b"}}

	s, ok := StringSliceParam(params, "tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, s)

	_, ok = StringSliceParam(params, "absent")
	assert.False(t, ok)
}
