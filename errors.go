package toolbridge

import "github.com/toolbridge/toolbridge-go/internal/errors"

// Re-export error types from internal package

// ValidationError indicates a malformed tool definition at registration.
type ValidationError = errors.ValidationError

// CapabilityError indicates a registration was rejected because required
// capability tokens are not granted.
type CapabilityError = errors.CapabilityError

// NotFoundError indicates execution was requested for an unregistered tool.
type NotFoundError = errors.NotFoundError

// ExecutionError surfaces a tool handler's own failure.
type ExecutionError = errors.ExecutionError

// SyncError indicates a background tool-list synchronization attempt failed.
type SyncError = errors.SyncError

// ConnectionError indicates a Connect call failed.
type ConnectionError = errors.ConnectionError

// SDKError is the base interface for all toolbridge errors.
type SDKError = errors.SDKError

// Re-export sentinel errors from internal package.
var (
	// ErrServerURLRequired indicates the client was constructed without a server URL.
	ErrServerURLRequired = errors.ErrServerURLRequired

	// ErrClientDestroyed indicates the client has been destroyed and cannot be reused.
	ErrClientDestroyed = errors.ErrClientDestroyed

	// ErrAlreadyConnected indicates Connect was called while a connection is active or pending.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrCoreNotConnected indicates the core transport is not connected.
	ErrCoreNotConnected = errors.ErrCoreNotConnected
)
