package tool

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/toolbridge/toolbridge-go/internal/capability"
	"github.com/toolbridge/toolbridge-go/internal/errors"
)

// Handler is the function invoked when a remote agent calls a tool.
// Params carries the decoded invocation arguments. The returned value is
// serialized into the protocol-level tool result.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Definition is a locally registered tool: a named, described,
// capability-scoped function exposed to a remote agent.
//
// A Definition is immutable once accepted into the registry; re-registering
// under the same name replaces it wholesale.
type Definition struct {
	// Name uniquely identifies the tool within one client.
	Name string
	// Description tells the remote agent what the tool does.
	Description string
	// InputSchema optionally describes the expected params. Opaque to the
	// registry; transmitted verbatim in the protocol view.
	InputSchema *jsonschema.Schema
	// Capabilities lists the tokens that must be granted for this tool to
	// be registered. Empty means unrestricted.
	Capabilities []capability.Capability
	// Handler executes the tool. Never transmitted.
	Handler Handler
	// Version is an optional tool version string.
	Version string
}

// Validate checks the fields required for registration.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return &errors.ValidationError{Field: "name", Reason: "must be a non-empty string"}
	}

	if d.Description == "" {
		return &errors.ValidationError{Field: "description", Reason: "must be a non-empty string"}
	}

	if d.Handler == nil {
		return &errors.ValidationError{Field: "handler", Reason: "must be a callable function"}
	}

	return nil
}

// ProtocolDefinition is the handler-free projection of a Definition, the
// form transmitted to the remote session.
type ProtocolDefinition struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	InputSchema  *jsonschema.Schema      `json:"inputSchema,omitempty"`
	Capabilities []capability.Capability `json:"capabilities,omitempty"`
	Version      string                  `json:"version,omitempty"`
}

// ToProtocol derives the protocol view of the definition. Pure projection:
// every transmitted attribute is carried over exactly, the handler is dropped.
func (d *Definition) ToProtocol() ProtocolDefinition {
	return ProtocolDefinition{
		Name:         d.Name,
		Description:  d.Description,
		InputSchema:  d.InputSchema,
		Capabilities: d.Capabilities,
		Version:      d.Version,
	}
}
