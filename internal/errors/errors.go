package errors

import (
	"errors"
	"fmt"
	"strings"
)

// SDKError is the base interface for all toolbridge errors.
type SDKError interface {
	error
	IsToolbridgeError() bool
}

// Compile-time verification that all error types implement SDKError.
var (
	_ SDKError = (*ValidationError)(nil)
	_ SDKError = (*CapabilityError)(nil)
	_ SDKError = (*NotFoundError)(nil)
	_ SDKError = (*ExecutionError)(nil)
	_ SDKError = (*SyncError)(nil)
	_ SDKError = (*ConnectionError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrServerURLRequired indicates the client was constructed without a server URL.
	ErrServerURLRequired = errors.New("server URL is required")

	// ErrClientDestroyed indicates the client has been destroyed and cannot be reused.
	ErrClientDestroyed = errors.New("client destroyed: clients are single-use, create a new one with New()")

	// ErrAlreadyConnected indicates Connect was called while a connection is active or pending.
	ErrAlreadyConnected = errors.New("client already connected")

	// ErrCoreNotConnected indicates the core client is not connected.
	ErrCoreNotConnected = errors.New("core client not connected")
)

// ValidationError indicates a malformed tool definition at registration.
// Registration fails synchronously and the registry is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tool definition: %s %s", e.Field, e.Reason)
}

// IsToolbridgeError implements SDKError.
func (e *ValidationError) IsToolbridgeError() bool { return true }

// CapabilityError indicates a registration was rejected because required
// capability tokens are not granted. Missing preserves the order the tokens
// appear in the tool's requirement list.
type CapabilityError struct {
	Tool    string
	Missing []string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("tool %q requires ungranted capabilities: %s", e.Tool, strings.Join(e.Missing, ", "))
}

// IsToolbridgeError implements SDKError.
func (e *CapabilityError) IsToolbridgeError() bool { return true }

// NotFoundError indicates execution was requested for an unregistered tool.
type NotFoundError struct {
	Tool string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Tool)
}

// IsToolbridgeError implements SDKError.
func (e *NotFoundError) IsToolbridgeError() bool { return true }

// ExecutionError surfaces a tool handler's own failure, wrapped with the
// originating tool name.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %q execution failed: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsToolbridgeError implements SDKError.
func (e *ExecutionError) IsToolbridgeError() bool { return true }

// SyncError indicates a background tool-list synchronization attempt failed.
// It is reported through the error event channel, never thrown into the call
// that triggered the sync.
type SyncError struct {
	Context string
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("tool sync failed (%s): %v", e.Context, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// IsToolbridgeError implements SDKError.
func (e *SyncError) IsToolbridgeError() bool { return true }

// ConnectionError indicates a Connect call failed. It is returned to the
// caller of Connect and also reported via the error event.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsToolbridgeError implements SDKError.
func (e *ConnectionError) IsToolbridgeError() bool { return true }
