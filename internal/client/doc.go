// Package client implements the session client that composes the tool
// registry, the capability manager, and a core transport.
//
// The client owns the connection status machine, gates registrations on the
// capability grant set, keeps the remote session's tool list converged with
// the local registry, and re-emits core transport events under the public
// event contract.
package client
