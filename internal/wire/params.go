package wire

import "github.com/toolbridge/toolbridge-go/internal/tool"

// SessionCreateParams accompanies MethodSessionCreate.
type SessionCreateParams struct {
	// SessionID optionally resumes an existing session. Empty requests a
	// fresh one.
	SessionID string `json:"sessionId,omitempty"`
	// ClientID identifies this client instance across reconnects.
	ClientID string `json:"clientId"`
}

// SessionCreateResult answers MethodSessionCreate.
type SessionCreateResult struct {
	SessionID string `json:"sessionId"`
}

// ToolsRegisterParams accompanies MethodToolsRegister. Tools is the full
// replacement list, never a delta.
type ToolsRegisterParams struct {
	Tools []tool.ProtocolDefinition `json:"tools"`
}

// ToolsCallParams accompanies an inbound MethodToolsCall request.
type ToolsCallParams struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// ToolsCallResult answers MethodToolsCall.
type ToolsCallResult struct {
	Result any `json:"result"`
}
