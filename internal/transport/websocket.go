package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/toolbridge/toolbridge-go/internal/core"
	"github.com/toolbridge/toolbridge-go/internal/errors"
	"github.com/toolbridge/toolbridge-go/internal/event"
	"github.com/toolbridge/toolbridge-go/internal/tool"
	"github.com/toolbridge/toolbridge-go/internal/wire"
)

// Compile-time verification that WebSocket implements core.Client.
var _ core.Client = (*WebSocket)(nil)

const (
	// defaultConnectTimeout bounds the dial plus session handshake.
	defaultConnectTimeout = 30 * time.Second

	// defaultReconnectDelay is the initial backoff interval between
	// reconnect attempts.
	defaultReconnectDelay = time.Second

	// requestTimeout bounds a single request/response round trip.
	requestTimeout = 30 * time.Second
)

// Options configures the websocket transport.
type Options struct {
	// ServerURL is the ws:// or wss:// endpoint. Required.
	ServerURL string

	// SessionID optionally resumes an existing session.
	SessionID string

	// AutoReconnect enables automatic reconnection after an unexpected
	// connection loss.
	AutoReconnect bool

	// ReconnectDelay is the initial backoff interval. Zero means one second.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts caps reconnection attempts. Zero means five.
	MaxReconnectAttempts int

	// ConnectTimeout bounds dial plus handshake. Zero means thirty seconds.
	ConnectTimeout time.Duration

	// AuthToken, when set, is sent as an Authorization bearer header.
	AuthToken string

	// Headers are extra headers sent with the websocket handshake.
	Headers http.Header

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// WebSocket is the default core client.
type WebSocket struct {
	log     *slog.Logger
	opts    Options
	emitter *event.Emitter

	// clientID identifies this instance to the server across reconnects.
	clientID string

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	closing   bool
	sessionID string
	eg        *errgroup.Group
	cancel    context.CancelFunc

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan *wire.Message

	handlersMu sync.RWMutex
	handlers   map[string]core.ToolHandler
}

// NewWebSocket creates the transport. No connection is made until Connect.
func NewWebSocket(opts Options) *WebSocket {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultConnectTimeout
	}

	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}

	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = 5
	}

	return &WebSocket{
		log:      log,
		opts:     opts,
		emitter:  event.NewEmitter(),
		clientID: uuid.NewString(),
		pending:  make(map[string]chan *wire.Message),
		handlers: make(map[string]core.ToolHandler),
	}
}

// Connect dials the server and performs the session handshake.
func (t *WebSocket) Connect(ctx context.Context) error {
	t.mu.Lock()
	if t.connected {
		t.mu.Unlock()

		return errors.ErrAlreadyConnected
	}
	t.closing = false
	t.mu.Unlock()

	if err := t.dial(ctx); err != nil {
		return err
	}

	t.emitter.Emit(event.KindConnect, event.ConnectPayload{SessionID: t.SessionID()})

	return nil
}

// dial establishes one connection and handshakes a session. It is shared by
// Connect and the reconnect loop; it does not emit connect events.
func (t *WebSocket) dial(ctx context.Context) error {
	headers := http.Header{}
	for k, v := range t.opts.Headers {
		headers[k] = v
	}

	if t.opts.AuthToken != "" {
		headers.Set("Authorization", "Bearer "+t.opts.AuthToken)
	}

	dialer := websocket.Dialer{HandshakeTimeout: t.opts.ConnectTimeout}

	conn, resp, err := dialer.DialContext(ctx, t.opts.ServerURL, headers)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if err != nil {
		return fmt.Errorf("dial %s: %w", t.opts.ServerURL, err)
	}

	connCtx, cancel := context.WithCancel(context.Background())
	eg, egCtx := errgroup.WithContext(connCtx)

	t.mu.Lock()
	// Resume the previous session if one was established earlier.
	resume := t.sessionID
	if resume == "" {
		resume = t.opts.SessionID
	}
	t.conn = conn
	t.eg = eg
	t.cancel = cancel
	t.mu.Unlock()

	eg.Go(func() error { return t.readLoop(egCtx, conn) })

	handshakeCtx, cancelHandshake := context.WithTimeout(ctx, t.opts.ConnectTimeout)
	defer cancelHandshake()

	var result wire.SessionCreateResult

	err = t.call(handshakeCtx, wire.MethodSessionCreate, wire.SessionCreateParams{
		SessionID: resume,
		ClientID:  t.clientID,
	}, &result)
	if err != nil {
		t.teardown()

		return fmt.Errorf("session handshake: %w", err)
	}

	t.mu.Lock()
	t.sessionID = result.SessionID
	t.connected = true
	t.mu.Unlock()

	t.log.Debug("session established", "sessionId", result.SessionID)

	return nil
}

// Disconnect closes the connection. Safe to call when not connected.
func (t *WebSocket) Disconnect(_ context.Context) error {
	t.mu.Lock()
	if t.conn == nil {
		t.closing = true
		t.mu.Unlock()

		return nil
	}
	t.closing = true
	conn := t.conn
	t.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

	t.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	t.writeMu.Unlock()

	t.teardown()
	t.emitter.Emit(event.KindDisconnect, event.DisconnectPayload{
		Reason: "manual",
		Code:   int(websocket.CloseNormalClosure),
	})

	return nil
}

// teardown closes the connection, stops the read loop, and fails pending
// requests. Idempotent.
func (t *WebSocket) teardown() {
	t.mu.Lock()
	conn := t.conn
	cancel := t.cancel
	eg := t.eg
	t.conn = nil
	t.cancel = nil
	t.eg = nil
	t.connected = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if conn != nil {
		conn.Close()
	}

	if eg != nil {
		_ = eg.Wait()
	}

	t.failPending()
}

// IsConnected implements core.Client.
func (t *WebSocket) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.connected
}

// SessionID implements core.Client.
func (t *WebSocket) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sessionID
}

// RegisterTools implements core.Client.
func (t *WebSocket) RegisterTools(ctx context.Context, tools []tool.ProtocolDefinition) error {
	if !t.IsConnected() {
		return errors.ErrCoreNotConnected
	}

	return t.call(ctx, wire.MethodToolsRegister, wire.ToolsRegisterParams{Tools: tools}, nil)
}

// RegisterHandler implements core.Client.
func (t *WebSocket) RegisterHandler(name string, handler core.ToolHandler) {
	t.handlersMu.Lock()
	defer t.handlersMu.Unlock()

	t.handlers[name] = handler
}

// UnregisterHandler implements core.Client.
func (t *WebSocket) UnregisterHandler(name string) {
	t.handlersMu.Lock()
	defer t.handlersMu.Unlock()

	delete(t.handlers, name)
}

// On implements core.Client.
func (t *WebSocket) On(kind event.Kind, handler event.Handler) func() {
	return t.emitter.On(kind, handler)
}

// Off implements core.Client.
func (t *WebSocket) Off(kind event.Kind) {
	t.emitter.Off(kind)
}

// call sends a request and blocks until its response arrives or ctx is done.
func (t *WebSocket) call(ctx context.Context, method string, params, result any) error {
	req, err := wire.NewRequest(method, params)
	if err != nil {
		return err
	}

	ch := make(chan *wire.Message, 1)

	t.pendingMu.Lock()
	t.pending[req.ID] = ch
	t.pendingMu.Unlock()

	defer func() {
		t.pendingMu.Lock()
		delete(t.pending, req.ID)
		t.pendingMu.Unlock()
	}()

	if err := t.write(req); err != nil {
		return err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case resp, ok := <-ch:
		if !ok {
			return errors.ErrCoreNotConnected
		}

		if resp.Error != nil {
			return resp.Error
		}

		if result != nil {
			return wire.DecodeResult(resp, result)
		}

		return nil
	}
}

// write serializes and transmits a frame. gorilla allows one concurrent
// writer, hence the write mutex.
func (t *WebSocket) write(m *wire.Message) error {
	data, err := wire.Encode(m)
	if err != nil {
		return err
	}

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return errors.ErrCoreNotConnected
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	return conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop reads and routes frames until the connection drops.
func (t *WebSocket) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.handleReadError(err)

			return nil
		}

		msg, decodeErr := wire.Decode(data)
		if decodeErr != nil {
			t.log.Debug("dropping undecodable frame", "error", decodeErr)
			t.emitter.Emit(event.KindError, event.ErrorPayload{Err: decodeErr, Context: "message"})

			continue
		}

		t.emitter.Emit(event.KindMessage, msg)

		switch {
		case msg.IsResponse():
			t.routeResponse(msg)
		case msg.IsRequest() && msg.Method == wire.MethodToolsCall:
			go t.dispatchToolCall(ctx, msg)
		case msg.IsNotification():
			// session.ping and friends need no action beyond the
			// message event above.
		default:
			t.log.Debug("ignoring unexpected frame", "method", msg.Method, "id", msg.ID)
		}
	}
}

// handleReadError runs when the read loop exits. A manual close is quiet;
// an unexpected drop emits disconnect and, when enabled, starts reconnecting.
//
// It releases the dead connection itself rather than through teardown:
// waiting on the errgroup here would wait on the calling goroutine.
func (t *WebSocket) handleReadError(err error) {
	t.mu.Lock()
	manual := t.closing
	wasConnected := t.connected
	conn := t.conn
	cancel := t.cancel
	t.conn = nil
	t.cancel = nil
	t.eg = nil
	t.connected = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if conn != nil {
		conn.Close()
	}

	t.failPending()

	// A drop during the handshake surfaces through dial's error return, and
	// a manual close is reported by Disconnect. Neither belongs here.
	if manual || !wasConnected {
		return
	}

	t.log.Debug("connection lost", "error", err)

	// With auto-reconnect on, the drop is reported as reconnect attempts;
	// a disconnect event only fires when reconnection is off or abandoned.
	if t.opts.AutoReconnect {
		go t.reconnectLoop()

		return
	}

	t.emitter.Emit(event.KindDisconnect, event.DisconnectPayload{
		Reason: err.Error(),
		Code:   int(websocket.CloseAbnormalClosure),
	})
}

// reconnectLoop re-dials with exponential backoff until it succeeds, the
// attempt budget is spent, or a manual disconnect intervenes.
func (t *WebSocket) reconnectLoop() {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = t.opts.ReconnectDelay
	policy.MaxElapsedTime = 0

	attempt := 0

	operation := func() error {
		t.mu.Lock()
		if t.closing {
			t.mu.Unlock()

			return backoff.Permanent(errors.ErrCoreNotConnected)
		}
		t.mu.Unlock()

		attempt++
		t.emitter.Emit(event.KindReconnect, event.ReconnectPayload{Attempt: attempt})
		t.log.Debug("reconnecting", "attempt", attempt)

		ctx, cancel := context.WithTimeout(context.Background(), t.opts.ConnectTimeout)
		defer cancel()

		return t.dial(ctx)
	}

	limited := backoff.WithMaxRetries(policy, uint64(t.opts.MaxReconnectAttempts-1))

	if err := backoff.Retry(operation, limited); err != nil {
		t.log.Debug("reconnect abandoned", "error", err, "attempts", attempt)
		t.emitter.Emit(event.KindError, event.ErrorPayload{Err: err, Context: "reconnect"})
		t.emitter.Emit(event.KindDisconnect, event.DisconnectPayload{
			Reason: "reconnect failed",
			Code:   int(websocket.CloseAbnormalClosure),
		})

		return
	}

	t.emitter.Emit(event.KindConnect, event.ConnectPayload{SessionID: t.SessionID()})
}

// routeResponse delivers a response to the request waiting on it.
func (t *WebSocket) routeResponse(msg *wire.Message) {
	t.pendingMu.Lock()
	ch, ok := t.pending[msg.ID]
	t.pendingMu.Unlock()

	if !ok {
		t.log.Debug("response for unknown request", "id", msg.ID)

		return
	}

	ch <- msg
}

// failPending answers every in-flight request with a closed channel so
// callers unblock with an error.
func (t *WebSocket) failPending() {
	t.pendingMu.Lock()
	defer t.pendingMu.Unlock()

	for id, ch := range t.pending {
		close(ch)
		delete(t.pending, id)
	}
}

// dispatchToolCall executes an inbound invocation and sends the response.
func (t *WebSocket) dispatchToolCall(ctx context.Context, msg *wire.Message) {
	var params wire.ToolsCallParams
	if err := wire.DecodeParams(msg, &params); err != nil {
		t.respond(wire.NewErrorResponse(msg.ID, wire.CodeInvalidParams, err.Error()))

		return
	}

	t.handlersMu.RLock()
	handler, ok := t.handlers[params.Name]
	t.handlersMu.RUnlock()

	t.emitter.Emit(event.KindToolCall, event.ToolCallPayload{
		Name:   params.Name,
		Params: params.Params,
		ID:     msg.ID,
	})

	if !ok {
		t.respond(wire.NewErrorResponse(msg.ID, wire.CodeToolNotFound, "tool not found: "+params.Name))

		return
	}

	result, err := handler(ctx, params.Params, msg.ID)
	if err != nil {
		t.respond(wire.NewErrorResponse(msg.ID, wire.CodeToolFailed, err.Error()))

		return
	}

	resp, err := wire.NewResponse(msg.ID, wire.ToolsCallResult{Result: result})
	if err != nil {
		t.respond(wire.NewErrorResponse(msg.ID, wire.CodeToolFailed, err.Error()))

		return
	}

	t.respond(resp)
}

func (t *WebSocket) respond(m *wire.Message) {
	if err := t.write(m); err != nil {
		t.log.Debug("failed to send response", "id", m.ID, "error", err)
	}
}
