// Package transport implements the default core client: a websocket session
// transport speaking the JSON-RPC framing defined in package wire.
//
// The transport owns dialing, frame correlation, reconnect backoff, and
// inbound tool-call dispatch. Everything above it consumes the core.Client
// interface and the core event stream; nothing above it sees wire frames.
package transport
