// Package registry implements the local tool registry: the mapping from
// tool name to full tool definition, including the handler.
//
// The registry is the local source of truth; the remote session's view is
// made to converge with it by the client's sync machinery. Listing order is
// stable (insertion order) so sync payloads are deterministic.
//
// Execute performs no capability check. Capability enforcement happens at
// registration time, one layer up in the client, so a revocation after
// admission does not break already-registered tools.
package registry
