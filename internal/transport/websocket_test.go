package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolbridge/toolbridge-go/internal/event"
	"github.com/toolbridge/toolbridge-go/internal/tool"
	"github.com/toolbridge/toolbridge-go/internal/wire"
)

// testServer is a minimal in-process session server.
type testServer struct {
	t   *testing.T
	srv *httptest.Server

	mu    sync.Mutex
	conns []*websocket.Conn

	sessions  chan wire.SessionCreateParams
	registers chan wire.ToolsRegisterParams
	responses chan *wire.Message
	authz     chan string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		t:         t,
		sessions:  make(chan wire.SessionCreateParams, 8),
		registers: make(chan wire.ToolsRegisterParams, 8),
		responses: make(chan *wire.Message, 8),
		authz:     make(chan string, 8),
	}

	upgrader := websocket.Upgrader{}

	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case ts.authz <- r.Header.Get("Authorization"):
		default:
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		ts.mu.Lock()
		ts.conns = append(ts.conns, conn)
		ts.mu.Unlock()

		ts.serve(conn)
	}))

	t.Cleanup(ts.srv.Close)

	return ts
}

func (ts *testServer) url() string {
	return "ws" + strings.TrimPrefix(ts.srv.URL, "http")
}

func (ts *testServer) serve(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := wire.Decode(data)
		if err != nil {
			continue
		}

		switch {
		case msg.IsResponse():
			ts.responses <- msg
		case msg.Method == wire.MethodSessionCreate:
			var params wire.SessionCreateParams
			_ = wire.DecodeParams(msg, &params)
			ts.sessions <- params

			resp, _ := wire.NewResponse(msg.ID, wire.SessionCreateResult{SessionID: "sess-srv-1"})
			ts.write(conn, resp)
		case msg.Method == wire.MethodToolsRegister:
			var params wire.ToolsRegisterParams
			_ = wire.DecodeParams(msg, &params)
			ts.registers <- params

			resp, _ := wire.NewResponse(msg.ID, struct{}{})
			ts.write(conn, resp)
		}
	}
}

func (ts *testServer) write(conn *websocket.Conn, msg *wire.Message) {
	data, err := wire.Encode(msg)
	require.NoError(ts.t, err)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (ts *testServer) lastConn() *websocket.Conn {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	require.NotEmpty(ts.t, ts.conns)

	return ts.conns[len(ts.conns)-1]
}

func (ts *testServer) sendToolCall(id, name string, params map[string]any) {
	req := &wire.Message{JSONRPC: wire.Version, ID: id, Method: wire.MethodToolsCall}

	encoded, err := wire.NewRequest(wire.MethodToolsCall, wire.ToolsCallParams{Name: name, Params: params})
	require.NoError(ts.t, err)
	req.Params = encoded.Params

	ts.write(ts.lastConn(), req)
}

func recv[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)

		panic("unreachable")
	}
}

func TestConnectHandshake(t *testing.T) {
	ts := newTestServer(t)

	ws := NewWebSocket(Options{ServerURL: ts.url(), AuthToken: "tok-1"})

	connected := make(chan event.ConnectPayload, 1)
	ws.On(event.KindConnect, func(p any) { connected <- p.(event.ConnectPayload) })

	require.NoError(t, ws.Connect(context.Background()))
	defer ws.Disconnect(context.Background())

	assert.True(t, ws.IsConnected())
	assert.Equal(t, "sess-srv-1", ws.SessionID())

	payload := recv(t, connected, "connect event")
	assert.Equal(t, "sess-srv-1", payload.SessionID)

	assert.Equal(t, "Bearer tok-1", recv(t, ts.authz, "handshake auth header"))

	session := recv(t, ts.sessions, "session.create")
	assert.NotEmpty(t, session.ClientID)

	t.Run("second connect is rejected", func(t *testing.T) {
		assert.Error(t, ws.Connect(context.Background()))
	})
}

func TestConnectFailure(t *testing.T) {
	ws := NewWebSocket(Options{ServerURL: "ws://127.0.0.1:1", ConnectTimeout: time.Second})

	err := ws.Connect(context.Background())

	require.Error(t, err)
	assert.False(t, ws.IsConnected())
}

func TestRegisterTools(t *testing.T) {
	ts := newTestServer(t)
	ws := NewWebSocket(Options{ServerURL: ts.url()})

	require.NoError(t, ws.Connect(context.Background()))
	defer ws.Disconnect(context.Background())

	tools := []tool.ProtocolDefinition{
		{Name: "a", Description: "first"},
		{Name: "b", Description: "second", Version: "0.2.0"},
	}

	require.NoError(t, ws.RegisterTools(context.Background(), tools))

	params := recv(t, ts.registers, "tools.register")
	require.Len(t, params.Tools, 2)
	assert.Equal(t, "a", params.Tools[0].Name)
	assert.Equal(t, "0.2.0", params.Tools[1].Version)

	t.Run("fails when not connected", func(t *testing.T) {
		disconnected := NewWebSocket(Options{ServerURL: ts.url()})

		assert.Error(t, disconnected.RegisterTools(context.Background(), tools))
	})
}

func TestInboundToolCall(t *testing.T) {
	ts := newTestServer(t)
	ws := NewWebSocket(Options{ServerURL: ts.url()})

	ws.RegisterHandler("echo", func(_ context.Context, params map[string]any, _ string) (any, error) {
		return params["value"], nil
	})

	calls := make(chan event.ToolCallPayload, 8)
	ws.On(event.KindToolCall, func(p any) { calls <- p.(event.ToolCallPayload) })

	require.NoError(t, ws.Connect(context.Background()))
	defer ws.Disconnect(context.Background())

	ts.sendToolCall("inv-1", "echo", map[string]any{"value": "hi"})

	call := recv(t, calls, "tool:call event")
	assert.Equal(t, "echo", call.Name)
	assert.Equal(t, "inv-1", call.ID)

	resp := recv(t, ts.responses, "tools.call response")
	assert.Equal(t, "inv-1", resp.ID)
	require.Nil(t, resp.Error)

	var result wire.ToolsCallResult
	require.NoError(t, wire.DecodeResult(resp, &result))
	assert.Equal(t, "hi", result.Result)

	t.Run("unknown tool yields an error response", func(t *testing.T) {
		ts.sendToolCall("inv-2", "ghost", nil)

		resp := recv(t, ts.responses, "error response")
		assert.Equal(t, "inv-2", resp.ID)
		require.NotNil(t, resp.Error)
		assert.Equal(t, wire.CodeToolNotFound, resp.Error.Code)
	})

	t.Run("handler failure yields an error response", func(t *testing.T) {
		ws.RegisterHandler("flaky", func(_ context.Context, _ map[string]any, _ string) (any, error) {
			return nil, assert.AnError
		})

		ts.sendToolCall("inv-3", "flaky", nil)

		resp := recv(t, ts.responses, "error response")
		require.NotNil(t, resp.Error)
		assert.Equal(t, wire.CodeToolFailed, resp.Error.Code)
	})
}

func TestManualDisconnect(t *testing.T) {
	ts := newTestServer(t)
	ws := NewWebSocket(Options{ServerURL: ts.url(), AutoReconnect: true})

	disconnects := make(chan event.DisconnectPayload, 1)
	ws.On(event.KindDisconnect, func(p any) { disconnects <- p.(event.DisconnectPayload) })

	reconnecting := make(chan struct{}, 1)
	ws.On(event.KindReconnect, func(any) {
		select {
		case reconnecting <- struct{}{}:
		default:
		}
	})

	require.NoError(t, ws.Connect(context.Background()))
	require.NoError(t, ws.Disconnect(context.Background()))

	payload := recv(t, disconnects, "disconnect event")
	assert.Equal(t, "manual", payload.Reason)
	assert.False(t, ws.IsConnected())

	select {
	case <-reconnecting:
		t.Fatal("manual disconnect must not trigger reconnection")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnexpectedDrop(t *testing.T) {
	ts := newTestServer(t)
	ws := NewWebSocket(Options{ServerURL: ts.url()})

	disconnects := make(chan event.DisconnectPayload, 1)
	ws.On(event.KindDisconnect, func(p any) { disconnects <- p.(event.DisconnectPayload) })

	require.NoError(t, ws.Connect(context.Background()))

	ts.lastConn().Close()

	recv(t, disconnects, "disconnect event")
	assert.False(t, ws.IsConnected())

	// The dead connection is released, not merely flagged, so repeated
	// drop/redial cycles hold no stale conns or contexts.
	require.Eventually(t, func() bool {
		ws.mu.Lock()
		defer ws.mu.Unlock()

		return ws.conn == nil && ws.cancel == nil && ws.eg == nil
	}, time.Second, 10*time.Millisecond)
}

func TestAutoReconnect(t *testing.T) {
	ts := newTestServer(t)
	ws := NewWebSocket(Options{
		ServerURL:            ts.url(),
		AutoReconnect:        true,
		ReconnectDelay:       10 * time.Millisecond,
		MaxReconnectAttempts: 5,
	})

	connects := make(chan event.ConnectPayload, 4)
	ws.On(event.KindConnect, func(p any) { connects <- p.(event.ConnectPayload) })

	reconnects := make(chan event.ReconnectPayload, 4)
	ws.On(event.KindReconnect, func(p any) { reconnects <- p.(event.ReconnectPayload) })

	require.NoError(t, ws.Connect(context.Background()))
	recv(t, connects, "initial connect event")

	// Server-side drop: reported as reconnect attempts, not a disconnect.
	ts.lastConn().Close()

	attempt := recv(t, reconnects, "reconnect event")
	assert.GreaterOrEqual(t, attempt.Attempt, 1)

	payload := recv(t, connects, "reconnected event")
	assert.Equal(t, "sess-srv-1", payload.SessionID)

	require.Eventually(t, ws.IsConnected, 2*time.Second, 10*time.Millisecond)

	// The resumed handshake carries the previous session ID.
	recv(t, ts.sessions, "first session.create")
	resumed := recv(t, ts.sessions, "second session.create")
	assert.Equal(t, "sess-srv-1", resumed.SessionID)

	_ = ws.Disconnect(context.Background())
}
