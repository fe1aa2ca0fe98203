package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/toolbridge/toolbridge-go/internal/capability"
	"github.com/toolbridge/toolbridge-go/internal/core"
	"github.com/toolbridge/toolbridge-go/internal/errors"
	"github.com/toolbridge/toolbridge-go/internal/event"
	"github.com/toolbridge/toolbridge-go/internal/registry"
	"github.com/toolbridge/toolbridge-go/internal/tool"
)

// destroyTimeout bounds the best-effort disconnect inside Destroy.
const destroyTimeout = 5 * time.Second

// Client composes the tool registry, the capability manager, and a core
// transport into the session client.
//
// The registry is the local source of truth for tools; the remote session's
// view converges with it through full-list syncs triggered by connect,
// reconnect, and every registry mutation while connected.
type Client struct {
	log      *slog.Logger
	core     core.Client
	registry *registry.Registry
	caps     *capability.Manager
	emitter  *event.Emitter

	mu        sync.Mutex
	status    Status
	destroyed bool
	coreSubs  []func()

	// Sync coalescing: at most one sync goroutine runs at a time. A
	// mutation arriving while one is in flight marks dirty, and the running
	// goroutine loops, re-reading the registry, until clean. The
	// transmitted snapshot therefore never omits the latest mutation.
	syncMu       sync.Mutex
	syncInFlight bool
	syncDirty    bool
}

// New creates a client over the given core transport. Initial grants follow
// the capability manager's default when grants is nil.
func New(coreClient core.Client, grants []capability.Capability, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		log:      log,
		core:     coreClient,
		registry: registry.New(log),
		caps:     capability.NewManager(grants),
		emitter:  event.NewEmitter(),
		status:   StatusDisconnected,
	}

	c.coreSubs = []func(){
		coreClient.On(event.KindConnect, c.onCoreConnect),
		coreClient.On(event.KindDisconnect, c.onCoreDisconnect),
		coreClient.On(event.KindReconnect, c.onCoreReconnect),
		coreClient.On(event.KindError, c.onCoreError),
		coreClient.On(event.KindMessage, c.onCoreMessage),
	}

	return c
}

// Status returns the current connection status.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// IsConnected reports whether the client is connected.
func (c *Client) IsConnected() bool {
	return c.Status() == StatusConnected
}

// SessionID returns the session identifier, or "" before the first connect.
func (c *Client) SessionID() string {
	return c.core.SessionID()
}

// Core exposes the underlying core transport for advanced use.
func (c *Client) Core() core.Client {
	return c.core
}

// Capabilities exposes the capability manager for grant/revoke at runtime.
func (c *Client) Capabilities() *capability.Manager {
	return c.caps
}

// On subscribes handler to a client event and returns an unsubscribe
// function.
func (c *Client) On(kind event.Kind, handler event.Handler) func() {
	return c.emitter.On(kind, handler)
}

// Once subscribes handler for a single delivery.
func (c *Client) Once(kind event.Kind, handler event.Handler) func() {
	return c.emitter.Once(kind, handler)
}

// Off removes every subscription of kind. To remove a single handler, use
// the unsubscribe function returned by On.
func (c *Client) Off(kind event.Kind) {
	c.emitter.Off(kind)
}

// Connect establishes the session and performs the initial tool sync.
// Tools registered while disconnected are included, so nothing is lost by
// registering before connecting.
//
// On failure the status rolls back to disconnected, an error event with
// context "connect" is emitted, and the error is returned.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()

		return errors.ErrClientDestroyed
	}

	if c.status != StatusDisconnected {
		c.mu.Unlock()

		return errors.ErrAlreadyConnected
	}
	// Claim the sync coordinator for the whole connect sequence, before
	// the status flip makes mutations schedule syncs. A registration
	// arriving anywhere in the sequence marks dirty, and the initial sync
	// loop below drains dirty, so the last transmitted list always covers
	// every tool registered so far.
	c.syncMu.Lock()
	c.syncInFlight = true
	c.syncDirty = false
	c.syncMu.Unlock()

	c.status = StatusConnecting
	c.mu.Unlock()

	if err := c.core.Connect(ctx); err != nil {
		c.releaseSync()

		return c.failConnect(err)
	}

	// Initial sync is part of connecting: the session is not usable until
	// the remote side has the current tool list.
	for {
		if err := c.core.RegisterTools(ctx, c.registry.ToProtocol()); err != nil {
			c.releaseSync()

			discCtx, cancel := context.WithTimeout(context.Background(), destroyTimeout)
			_ = c.core.Disconnect(discCtx)
			cancel()

			return c.failConnect(fmt.Errorf("initial tool sync: %w", err))
		}

		c.syncMu.Lock()
		if !c.syncDirty {
			c.syncInFlight = false
			c.syncMu.Unlock()

			break
		}
		c.syncDirty = false
		c.syncMu.Unlock()
	}

	c.mu.Lock()
	if c.destroyed || c.status != StatusConnecting {
		// Destroyed mid-connect: the session just established belongs to
		// a client that no longer exists. Tear it down quietly.
		c.mu.Unlock()

		discCtx, cancel := context.WithTimeout(context.Background(), destroyTimeout)
		_ = c.core.Disconnect(discCtx)
		cancel()

		return errors.ErrClientDestroyed
	}
	c.status = StatusConnected
	c.mu.Unlock()

	c.emitter.Emit(event.KindConnect, event.ConnectPayload{SessionID: c.core.SessionID()})
	c.log.Debug("connected", "sessionId", c.core.SessionID(), "tools", c.registry.Len())

	return nil
}

// releaseSync frees the sync coordinator after a connect attempt that will
// not drain it.
func (c *Client) releaseSync() {
	c.syncMu.Lock()
	c.syncInFlight = false
	c.syncDirty = false
	c.syncMu.Unlock()
}

// failConnect rolls the status back, reports the failure, and returns it.
func (c *Client) failConnect(err error) error {
	c.mu.Lock()
	c.status = StatusDisconnected
	c.mu.Unlock()

	connErr := &errors.ConnectionError{Err: err}
	c.emitter.Emit(event.KindError, event.ErrorPayload{Err: connErr, Context: "connect"})

	return connErr
}

// Disconnect tears the session down from any state. Core-level disconnect
// failures are swallowed so the local status always reaches disconnected.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	c.status = StatusDisconnected
	c.mu.Unlock()

	if err := c.core.Disconnect(ctx); err != nil {
		c.log.Debug("core disconnect failed", "error", err)
	}

	c.emitter.Emit(event.KindDisconnect, event.DisconnectPayload{Reason: "manual", Code: 1000})

	return nil
}

// Destroy tears the client down: best-effort disconnect, then clears the
// registry, the capability grants, and all local event subscriptions. The
// client cannot be reused afterwards. Never fails.
func (c *Client) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()

		return
	}
	c.destroyed = true
	subs := c.coreSubs
	c.coreSubs = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), destroyTimeout)
	defer cancel()

	_ = c.Disconnect(ctx)

	for _, off := range subs {
		off()
	}

	c.registry.Clear()
	c.caps.Clear()
	c.emitter.Clear()
}

// RegisterTool validates the definition, checks its required capabilities
// against the grant set, and admits it to the registry. Fails closed: a
// rejected registration leaves the registry exactly as it was.
//
// The call never blocks on the network. While connected or connecting, a
// sync covering the tool is ensured; otherwise the tool is picked up by the
// initial sync of the next successful connect.
func (c *Client) RegisterTool(def *tool.Definition) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()

		return errors.ErrClientDestroyed
	}
	c.mu.Unlock()

	if def == nil {
		return &errors.ValidationError{Field: "definition", Reason: "must not be nil"}
	}

	if err := def.Validate(); err != nil {
		return err
	}

	if len(def.Capabilities) > 0 {
		result := c.caps.Check(def.Capabilities)
		if !result.Allowed {
			missing := make([]string, len(result.Missing))
			for i, m := range result.Missing {
				missing[i] = m.String()
			}

			return &errors.CapabilityError{Tool: def.Name, Missing: missing}
		}
	}

	if err := c.registry.Register(def); err != nil {
		return err
	}

	c.core.RegisterHandler(def.Name, c.wrapHandler(def.Name))

	if s := c.Status(); s == StatusConnected || s == StatusConnecting {
		c.scheduleSync("tool-registration-sync")
	}

	return nil
}

// UnregisterTool removes the named tool. Returns true iff it existed.
// While connected, a background sync transmits the updated list.
func (c *Client) UnregisterTool(name string) bool {
	if !c.registry.Unregister(name) {
		return false
	}

	c.core.UnregisterHandler(name)

	if s := c.Status(); s == StatusConnected || s == StatusConnecting {
		c.scheduleSync("tool-unregistration-sync")
	}

	return true
}

// ListTools returns the registered tools in registration order.
func (c *Client) ListTools() []*tool.Definition {
	return c.registry.List()
}

// HasTool reports whether a tool is registered under name.
func (c *Client) HasTool(name string) bool {
	return c.registry.Has(name)
}

// ExecuteTool invokes a registered tool locally. This is the same execution
// path an inbound invocation takes, minus event emission.
func (c *Client) ExecuteTool(ctx context.Context, name string, params map[string]any) (any, error) {
	return c.registry.Execute(ctx, name, params)
}

// wrapHandler builds the dispatch target installed with the core transport:
// it surrounds the raw handler with tool:call / tool:result / error event
// emission. A handler failure is re-raised so the core can produce a
// protocol-level error response; it never crashes the client.
func (c *Client) wrapHandler(name string) core.ToolHandler {
	return func(ctx context.Context, params map[string]any, invocationID string) (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &errors.ExecutionError{Tool: name, Err: fmt.Errorf("handler panic: %v", r)}
				c.emitter.Emit(event.KindError, event.ErrorPayload{Err: err, Context: "tool:" + name})
			}
		}()

		c.emitter.Emit(event.KindToolCall, event.ToolCallPayload{
			Name:   name,
			Params: params,
			ID:     invocationID,
		})

		result, execErr := c.registry.Execute(ctx, name, params)
		if execErr != nil {
			if _, ok := execErr.(*errors.NotFoundError); !ok {
				execErr = &errors.ExecutionError{Tool: name, Err: execErr}
			}

			c.emitter.Emit(event.KindError, event.ErrorPayload{Err: execErr, Context: "tool:" + name})

			return nil, execErr
		}

		c.emitter.Emit(event.KindToolResult, event.ToolResultPayload{
			Name:   name,
			Result: result,
			ID:     invocationID,
		})

		return result, nil
	}
}

// scheduleSync requests a background transmission of the registry's full
// protocol view. Fire-and-forget: failures surface through the error event,
// never through the mutating call that triggered the sync.
func (c *Client) scheduleSync(label string) {
	c.syncMu.Lock()
	if c.syncInFlight {
		c.syncDirty = true
		c.syncMu.Unlock()

		return
	}
	c.syncInFlight = true
	c.syncMu.Unlock()

	go c.runSync(label)
}

// runSync transmits the protocol view, re-reading the registry at send time.
// It loops while mutations arrive mid-flight so the last transmitted
// snapshot always covers the latest mutation.
func (c *Client) runSync(label string) {
	for {
		view := c.registry.ToProtocol()

		if err := c.core.RegisterTools(context.Background(), view); err != nil {
			syncErr := &errors.SyncError{Context: label, Err: err}
			c.log.Debug("tool sync failed", "context", label, "error", err)
			c.emitter.Emit(event.KindError, event.ErrorPayload{Err: syncErr, Context: label})
		} else {
			c.log.Debug("tool sync complete", "context", label, "tools", len(view))
		}

		c.syncMu.Lock()
		if !c.syncDirty {
			c.syncInFlight = false
			c.syncMu.Unlock()

			return
		}
		c.syncDirty = false
		c.syncMu.Unlock()
	}
}

// onCoreConnect completes a reconnection: the transport has re-established
// the session, so the full current registry is re-synced. The initial
// connect is handled synchronously in Connect and ignored here.
func (c *Client) onCoreConnect(payload any) {
	c.mu.Lock()
	if c.status != StatusReconnecting {
		c.mu.Unlock()

		return
	}
	c.status = StatusConnected
	c.mu.Unlock()

	sessionID := c.core.SessionID()
	if p, ok := payload.(event.ConnectPayload); ok && p.SessionID != "" {
		sessionID = p.SessionID
	}

	c.emitter.Emit(event.KindConnect, event.ConnectPayload{SessionID: sessionID})
	c.scheduleSync("sync")
}

// onCoreDisconnect reports an unexpected session loss, either a straight
// drop while connected or an abandoned reconnection. Manual disconnects are
// reported by Disconnect itself and ignored here.
func (c *Client) onCoreDisconnect(payload any) {
	c.mu.Lock()
	if c.status != StatusConnected && c.status != StatusReconnecting {
		c.mu.Unlock()

		return
	}
	c.status = StatusDisconnected
	c.mu.Unlock()

	out := event.DisconnectPayload{Reason: "connection lost"}
	if p, ok := payload.(event.DisconnectPayload); ok {
		out = p
	}

	c.emitter.Emit(event.KindDisconnect, out)
}

// onCoreReconnect marks the client reconnecting while the transport retries.
func (c *Client) onCoreReconnect(payload any) {
	c.mu.Lock()
	if c.status != StatusConnected && c.status != StatusReconnecting {
		c.mu.Unlock()

		return
	}
	c.status = StatusReconnecting
	c.mu.Unlock()

	out := event.ReconnectPayload{}
	if p, ok := payload.(event.ReconnectPayload); ok {
		out = p
	}

	c.emitter.Emit(event.KindReconnect, out)
}

// onCoreError re-emits transport-level failures under the public contract.
func (c *Client) onCoreError(payload any) {
	if p, ok := payload.(event.ErrorPayload); ok {
		c.emitter.Emit(event.KindError, p)

		return
	}

	c.emitter.Emit(event.KindError, event.ErrorPayload{Context: "core"})
}

// onCoreMessage passes raw protocol messages through unmodified for
// advanced consumers.
func (c *Client) onCoreMessage(payload any) {
	c.emitter.Emit(event.KindMessage, payload)
}
