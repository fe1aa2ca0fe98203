// Package capability implements the client-scoped capability grant set that
// gates tool registration.
//
// Capability tokens are opaque strings naming a browser permission class,
// e.g. "dom:write". The manager performs no semantic interpretation of
// tokens: there is no hierarchy where dom:* would imply dom:read. Unknown
// but well-formed tokens are accepted generically; they are simply never
// satisfied unless explicitly granted.
package capability
