// Package event implements the local event emitter used by the client and
// the default core transport.
//
// Emit snapshots the subscriber list before invoking handlers, so a handler
// may unsubscribe itself or others mid-emit without skipping or
// double-invoking unaffected handlers.
package event
