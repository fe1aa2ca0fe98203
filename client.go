package toolbridge

import (
	"log/slog"
	"os"

	"github.com/toolbridge/toolbridge-go/internal/client"
	"github.com/toolbridge/toolbridge-go/internal/core"
	"github.com/toolbridge/toolbridge-go/internal/errors"
	"github.com/toolbridge/toolbridge-go/internal/transport"
)

// Client is a capability-gated, session-synchronized tool client.
//
// Lifecycle: clients are single-use. After Destroy(), create a new client
// with New().
type Client = client.Client

// Status is the client's connection status.
type Status = client.Status

// Connection statuses.
const (
	// StatusDisconnected is the initial state, and the terminal state after
	// a manual disconnect.
	StatusDisconnected = client.StatusDisconnected
	// StatusConnecting means Connect is establishing the session.
	StatusConnecting = client.StatusConnecting
	// StatusConnected means the session is established and synced.
	StatusConnected = client.StatusConnected
	// StatusReconnecting means the session dropped and the transport is
	// re-establishing it.
	StatusReconnecting = client.StatusReconnecting
)

// CoreClient is the session transport a Client is layered on. The default
// implementation is a websocket transport; inject alternatives with
// WithCoreClient.
type CoreClient = core.Client

// CoreToolHandler is the dispatch signature a CoreClient invokes for
// inbound tool calls.
type CoreToolHandler = core.ToolHandler

// New creates a client for the given server URL.
//
// The client is not connected after creation; call Connect. Tools may be
// registered before connecting.
//
//	client, err := toolbridge.New("wss://agent.example.com/session",
//	    toolbridge.WithCapabilities(toolbridge.CapDOMRead),
//	    toolbridge.WithLogger(slog.Default()),
//	)
func New(serverURL string, opts ...Option) (*Client, error) {
	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		if options.Debug {
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			log = NopLogger()
		}
	}

	coreClient := options.Core
	if coreClient == nil {
		if serverURL == "" {
			return nil, errors.ErrServerURLRequired
		}

		coreClient = transport.NewWebSocket(transport.Options{
			ServerURL:            serverURL,
			SessionID:            options.SessionID,
			AutoReconnect:        options.AutoReconnect,
			ReconnectDelay:       options.ReconnectDelay,
			MaxReconnectAttempts: options.MaxReconnectAttempts,
			ConnectTimeout:       options.ConnectionTimeout,
			AuthToken:            options.AuthToken,
			Headers:              options.Headers,
			Logger:               log,
		})
	}

	return client.New(coreClient, options.Capabilities, log), nil
}
