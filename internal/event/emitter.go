package event

import "sync"

// Kind identifies the type of event emitted by the client.
type Kind string

const (
	// KindConnect is emitted when a session is established.
	KindConnect Kind = "connect"
	// KindDisconnect is emitted when the session ends.
	KindDisconnect Kind = "disconnect"
	// KindReconnect is emitted for each reconnection attempt.
	KindReconnect Kind = "reconnect"
	// KindError is emitted for asynchronous failures (sync, tool execution,
	// transport) and alongside connect failures.
	KindError Kind = "error"
	// KindMessage is the raw protocol message pass-through for advanced consumers.
	KindMessage Kind = "message"
	// KindToolCall is emitted when an inbound tool invocation arrives,
	// before the handler runs.
	KindToolCall Kind = "tool:call"
	// KindToolResult is emitted after a handler completes successfully.
	KindToolResult Kind = "tool:result"
)

// String returns the string representation of the event kind.
func (k Kind) String() string {
	return string(k)
}

// Handler receives an event payload. Payload types are per-kind and
// documented on the emitting component.
type Handler func(payload any)

type subscriber struct {
	id      uint64
	handler Handler
	once    bool
}

// Emitter is a string-kinded event dispatcher. Safe for concurrent use.
type Emitter struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscriber
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[Kind][]subscriber)}
}

// On subscribes handler to kind and returns an unsubscribe function.
// The unsubscribe function is idempotent.
func (e *Emitter) On(kind Kind, handler Handler) func() {
	return e.subscribe(kind, handler, false)
}

// Once subscribes handler to kind for a single delivery and returns an
// unsubscribe function usable before the event fires.
func (e *Emitter) Once(kind Kind, handler Handler) func() {
	return e.subscribe(kind, handler, true)
}

func (e *Emitter) subscribe(kind Kind, handler Handler, once bool) func() {
	if handler == nil {
		return func() {}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs[kind] = append(e.subs[kind], subscriber{id: id, handler: handler, once: once})

	return func() { e.remove(kind, id) }
}

func (e *Emitter) remove(kind Kind, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.subs[kind]
	for i, s := range subs {
		if s.id == id {
			e.subs[kind] = append(subs[:i:i], subs[i+1:]...)

			return
		}
	}
}

// Off removes every subscription of kind. Use the unsubscribe function
// returned by On/Once to remove a single handler.
func (e *Emitter) Off(kind Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.subs, kind)
}

// Emit delivers payload to every subscriber of kind. The subscriber list is
// snapshotted under lock before any handler runs; handlers execute without
// the lock held.
func (e *Emitter) Emit(kind Kind, payload any) {
	e.mu.Lock()

	subs := e.subs[kind]
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)

	// Drop once-subscribers before releasing the lock so a second Emit
	// racing this one cannot deliver to them twice.
	remaining := subs[:0]
	for _, s := range subs {
		if !s.once {
			remaining = append(remaining, s)
		}
	}
	e.subs[kind] = remaining

	e.mu.Unlock()

	for _, s := range snapshot {
		s.handler(payload)
	}
}

// Clear removes every subscription of every kind.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.subs = make(map[Kind][]subscriber)
}

// SubscriberCount returns the number of active subscriptions for kind.
func (e *Emitter) SubscriberCount(kind Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.subs[kind])
}
