package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "name", Reason: "must be a non-empty string"}

	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "non-empty")
	assert.True(t, err.IsToolbridgeError())
}

func TestCapabilityError(t *testing.T) {
	err := &CapabilityError{Tool: "screenshot", Missing: []string{"dom:read", "clipboard:write"}}

	assert.Contains(t, err.Error(), "screenshot")
	assert.Contains(t, err.Error(), "dom:read, clipboard:write")
	assert.True(t, err.IsToolbridgeError())
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Tool: "ghost"}

	assert.Equal(t, "tool not found: ghost", err.Error())
}

func TestExecutionError(t *testing.T) {
	cause := stderrors.New("boom")
	err := &ExecutionError{Tool: "flaky", Err: cause}

	assert.Contains(t, err.Error(), "flaky")
	assert.ErrorIs(t, err, cause)
}

func TestSyncError(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := &SyncError{Context: "tool-registration-sync", Err: cause}

	assert.Contains(t, err.Error(), "tool-registration-sync")
	assert.ErrorIs(t, err, cause)
}

func TestConnectionError(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := &ConnectionError{Err: cause}

	assert.Contains(t, err.Error(), "failed to connect")
	assert.ErrorIs(t, err, cause)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := &NotFoundError{Tool: "ghost"}
	wrapped := &ExecutionError{Tool: "ghost", Err: inner}

	var notFound *NotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "ghost", notFound.Tool)
}
