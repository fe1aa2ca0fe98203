package registry

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/toolbridge/toolbridge-go/internal/errors"
	"github.com/toolbridge/toolbridge-go/internal/tool"
)

// Registry stores tool definitions keyed by name. Safe for concurrent use.
type Registry struct {
	log *slog.Logger

	mu    sync.RWMutex
	tools map[string]*tool.Definition
	order []string
}

// New creates an empty registry. A nil logger disables logging.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		log:   log,
		tools: make(map[string]*tool.Definition, 8),
	}
}

// Register validates and stores a definition. Overwriting an existing name
// succeeds with a warning and moves the name to the most-recent position in
// listing order.
func (r *Registry) Register(def *tool.Definition) error {
	if def == nil {
		return &errors.ValidationError{Field: "definition", Reason: "must not be nil"}
	}

	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		r.log.Warn("overwriting existing tool registration", "tool", def.Name)
		r.removeFromOrder(def.Name)
	}

	stored := *def
	r.tools[def.Name] = &stored
	r.order = append(r.order, def.Name)

	return nil
}

// Unregister removes a definition. Returns true iff it existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return false
	}

	delete(r.tools, name)
	r.removeFromOrder(name)

	return true
}

// Get returns the definition for name, or nil if absent.
func (r *Registry) Get(name string) *tool.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tools[name]
}

// Has reports whether a definition exists for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tools[name]

	return ok
}

// List returns the definitions in registration order. The most recent
// registration of a name counts as its position.
func (r *Registry) List() []*tool.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*tool.Definition, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}

	return result
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Clear removes all definitions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]*tool.Definition, 8)
	r.order = nil
}

// ToProtocol returns the handler-free protocol view of every registered
// tool, in listing order.
func (r *Registry) ToProtocol() []tool.ProtocolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]tool.ProtocolDefinition, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name].ToProtocol())
	}

	return result
}

// Execute invokes the named tool's handler with params and propagates its
// outcome unchanged. Returns NotFoundError if no such tool is registered.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	r.mu.RLock()
	def, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &errors.NotFoundError{Tool: name}
	}

	return def.Handler(ctx, params)
}

// removeFromOrder drops name from the listing order. Caller holds r.mu.
func (r *Registry) removeFromOrder(name string) {
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i:i], r.order[i+1:]...)

			return
		}
	}
}
