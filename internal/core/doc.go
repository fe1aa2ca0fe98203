// Package core defines the contract between the client and the underlying
// session transport.
//
// The core client owns wire framing, socket handling, and reconnect timing.
// The client layered on top treats it purely through the Client interface:
// it consults the core's connectivity signals but keeps its own
// authoritative connection status, and it re-emits core events under the
// public event contract rather than passing them through.
package core
