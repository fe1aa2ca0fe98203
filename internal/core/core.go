package core

import (
	"context"

	"github.com/toolbridge/toolbridge-go/internal/event"
	"github.com/toolbridge/toolbridge-go/internal/tool"
)

// ToolHandler executes an inbound tool invocation dispatched by the core.
// The returned value is serialized into the protocol-level result; a
// returned error becomes a protocol-level error response.
type ToolHandler func(ctx context.Context, params map[string]any, invocationID string) (any, error)

// Client is the session transport the SDK is layered on.
//
// The default implementation is the websocket transport in
// internal/transport. Custom implementations can be injected for testing or
// for alternative transports (SSE, in-process loopback).
type Client interface {
	// Connect establishes the session. Blocks until the session is
	// established or ctx is done.
	Connect(ctx context.Context) error

	// Disconnect tears the session down. Safe to call when not connected.
	Disconnect(ctx context.Context) error

	// IsConnected reports the transport's own connectivity signal. This is
	// consulted, not authoritative, for the client's status machine.
	IsConnected() bool

	// SessionID returns the session identifier, or "" before the first
	// successful connect.
	SessionID() string

	// RegisterTools transmits the full tool list to the remote session,
	// replacing any previously transmitted list. Blocks until the remote
	// side acknowledges or ctx is done.
	RegisterTools(ctx context.Context, tools []tool.ProtocolDefinition) error

	// RegisterHandler installs the dispatch target for inbound invocations
	// of the named tool. Re-registering a name replaces the handler.
	RegisterHandler(name string, handler ToolHandler)

	// UnregisterHandler removes the dispatch target for name.
	UnregisterHandler(name string)

	// On subscribes to a core event and returns an unsubscribe function.
	//
	// Core events and their payload types:
	//   event.KindConnect    event.ConnectPayload    session (re)established
	//   event.KindDisconnect event.DisconnectPayload session lost or closed
	//   event.KindReconnect  event.ReconnectPayload  reconnect attempt starting
	//   event.KindError      event.ErrorPayload      transport-level failure
	//   event.KindMessage    raw decoded message     every inbound message
	//   event.KindToolCall   event.ToolCallPayload   inbound invocation, pre-dispatch
	On(kind event.Kind, handler event.Handler) func()

	// Off removes every subscription of kind.
	Off(kind event.Kind)
}
