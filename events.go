package toolbridge

import "github.com/toolbridge/toolbridge-go/internal/event"

// Event identifies a client event kind.
type Event = event.Kind

// Client event kinds.
const (
	// EventConnect fires when a session is established, with ConnectPayload.
	EventConnect = event.KindConnect
	// EventDisconnect fires when the session ends, with DisconnectPayload.
	EventDisconnect = event.KindDisconnect
	// EventReconnect fires for each reconnection attempt, with ReconnectPayload.
	EventReconnect = event.KindReconnect
	// EventError fires for asynchronous failures, with ErrorPayload.
	EventError = event.KindError
	// EventMessage passes raw protocol messages through for advanced consumers.
	EventMessage = event.KindMessage
	// EventToolCall fires when an inbound invocation arrives, before the
	// handler runs, with ToolCallPayload.
	EventToolCall = event.KindToolCall
	// EventToolResult fires after a handler completes, with ToolResultPayload.
	EventToolResult = event.KindToolResult
)

// EventHandler receives an event payload.
type EventHandler = event.Handler

// Event payload types.
type (
	// ConnectPayload accompanies EventConnect.
	ConnectPayload = event.ConnectPayload
	// DisconnectPayload accompanies EventDisconnect.
	DisconnectPayload = event.DisconnectPayload
	// ReconnectPayload accompanies EventReconnect.
	ReconnectPayload = event.ReconnectPayload
	// ErrorPayload accompanies EventError.
	ErrorPayload = event.ErrorPayload
	// ToolCallPayload accompanies EventToolCall.
	ToolCallPayload = event.ToolCallPayload
	// ToolResultPayload accompanies EventToolResult.
	ToolResultPayload = event.ToolResultPayload
)
