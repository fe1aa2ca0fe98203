package event

// ConnectPayload accompanies KindConnect.
type ConnectPayload struct {
	SessionID string `json:"sessionId"`
}

// DisconnectPayload accompanies KindDisconnect.
type DisconnectPayload struct {
	Reason string `json:"reason"`
	Code   int    `json:"code"`
}

// ReconnectPayload accompanies KindReconnect.
type ReconnectPayload struct {
	Attempt int `json:"attempt"`
}

// ErrorPayload accompanies KindError. Context names the operation that
// failed, e.g. "connect", "sync", "tool:<name>".
type ErrorPayload struct {
	Err     error  `json:"-"`
	Context string `json:"context"`
}

// ToolCallPayload accompanies KindToolCall, emitted before the handler runs.
type ToolCallPayload struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
	ID     string         `json:"id"`
}

// ToolResultPayload accompanies KindToolResult.
type ToolResultPayload struct {
	Name   string `json:"name"`
	Result any    `json:"result"`
	ID     string `json:"id"`
}
