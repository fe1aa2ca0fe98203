package toolbridge

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/toolbridge/toolbridge-go/internal/tool"
)

// ToolDefinition is a locally registered tool: a named, described,
// capability-scoped function exposed to a remote agent.
type ToolDefinition = tool.Definition

// ProtocolToolDefinition is the handler-free projection of a ToolDefinition,
// the form transmitted to the remote session.
type ProtocolToolDefinition = tool.ProtocolDefinition

// ToolHandler is the function invoked when a remote agent calls a tool.
type ToolHandler = tool.Handler

// Schema is a JSON Schema object describing a tool's expected input.
type Schema = jsonschema.Schema

// SimpleSchema creates a Schema from a simple type map.
//
// Input format: {"selector": "string", "limit": "int"}
//
// Type mappings:
//   - "string"           → {"type": "string"}
//   - "int", "int64"     → {"type": "integer"}
//   - "float64", "float" → {"type": "number"}
//   - "bool"             → {"type": "boolean"}
//   - "[]string"         → {"type": "array", "items": {"type": "string"}}
//   - "any", "object"    → {"type": "object"}
func SimpleSchema(props map[string]string) *Schema {
	return tool.SimpleSchema(props)
}
