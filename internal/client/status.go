package client

// Status is the client's connection status. It is owned exclusively by the
// client; the core transport's own connectivity signal is consulted but not
// authoritative.
type Status string

const (
	// StatusDisconnected is the initial state, and the terminal state after
	// a manual disconnect.
	StatusDisconnected Status = "disconnected"
	// StatusConnecting means Connect is establishing the session and
	// performing the initial tool sync.
	StatusConnecting Status = "connecting"
	// StatusConnected means the session is established and synced.
	StatusConnected Status = "connected"
	// StatusReconnecting means the session dropped and the transport is
	// attempting to re-establish it.
	StatusReconnecting Status = "reconnecting"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
