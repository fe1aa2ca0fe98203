// Package wire defines the JSON-RPC 2.0 message framing used by the default
// websocket transport.
//
// Outbound requests carry ULID identifiers so responses can be correlated.
// The orchestrator above the transport never sees these types.
package wire
