// Package errors defines error types for the toolbridge SDK.
//
// This package provides structured error types for the different failure
// scenarios of the tool registry and session client. All error types support
// error unwrapping and can be checked using errors.Is and errors.As.
package errors
