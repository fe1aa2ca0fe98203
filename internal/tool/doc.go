// Package tool defines the tool definition types shared by the registry,
// the client, and the transport layer.
package tool
