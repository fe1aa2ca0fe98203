package tool

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"selector": "string", "limit": "int"}
// Every property is required. Use the full jsonschema.Schema API for
// optional properties or nested objects.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// goTypeToJSONSchema maps a Go type name to a JSON Schema node. Slice types
// recurse on their element; unrecognized names fall back to string.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	if item, ok := strings.CutPrefix(goType, "[]"); ok {
		return &jsonschema.Schema{Type: "array", Items: goTypeToJSONSchema(item)}
	}

	switch goType {
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "float", "float32", "float64", "number":
		return &jsonschema.Schema{Type: "number"}
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "any", "map[string]any", "object":
		return &jsonschema.Schema{Type: "object"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}
