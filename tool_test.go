package toolbridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProtocolDropsHandler(t *testing.T) {
	def := &ToolDefinition{
		Name:         "fill_form",
		Description:  "Fill a form field",
		InputSchema:  SimpleSchema(map[string]string{"selector": "string", "value": "string"}),
		Capabilities: []Capability{CapDOMWrite},
		Version:      "2.1.0",
		Handler: func(_ context.Context, _ map[string]any) (any, error) {
			return nil, nil
		},
	}

	view := def.ToProtocol()

	assert.Equal(t, "fill_form", view.Name)
	assert.Equal(t, "Fill a form field", view.Description)
	assert.Equal(t, def.InputSchema, view.InputSchema)
	assert.Equal(t, []Capability{CapDOMWrite}, view.Capabilities)
	assert.Equal(t, "2.1.0", view.Version)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "handler")
	assert.Contains(t, string(data), `"inputSchema"`)
}

func TestSimpleSchema(t *testing.T) {
	t.Run("converts simple type map to JSON Schema", func(t *testing.T) {
		schema := SimpleSchema(map[string]string{
			"selector": "string",
			"count":    "int",
			"ratio":    "float64",
			"flag":     "bool",
			"tags":     "[]string",
			"extra":    "object",
		})

		assert.Equal(t, "object", schema.Type)
		assert.Len(t, schema.Properties, 6)
		assert.Len(t, schema.Required, 6)

		assert.Equal(t, "string", schema.Properties["selector"].Type)
		assert.Equal(t, "integer", schema.Properties["count"].Type)
		assert.Equal(t, "number", schema.Properties["ratio"].Type)
		assert.Equal(t, "boolean", schema.Properties["flag"].Type)
		assert.Equal(t, "array", schema.Properties["tags"].Type)
		assert.Equal(t, "string", schema.Properties["tags"].Items.Type)
		assert.Equal(t, "object", schema.Properties["extra"].Type)
	})

	t.Run("unknown type defaults to string", func(t *testing.T) {
		schema := SimpleSchema(map[string]string{"x": "complex128"})

		assert.Equal(t, "string", schema.Properties["x"].Type)
	})
}
