package toolbridge

import (
	"log/slog"
	"net/http"
	"time"
)

// Options configures a client. Use the With* functional options rather than
// constructing this directly.
type Options struct {
	// SessionID resumes an existing session instead of creating a fresh one.
	SessionID string

	// AutoReconnect enables automatic reconnection after an unexpected
	// connection loss. Enabled by default.
	AutoReconnect bool

	// ReconnectDelay is the initial backoff interval between reconnect
	// attempts. Zero means one second.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts caps reconnection attempts. Zero means five.
	MaxReconnectAttempts int

	// ConnectionTimeout bounds dial plus session handshake. Zero means
	// thirty seconds.
	ConnectionTimeout time.Duration

	// Debug enables debug logging to stderr when no Logger is set.
	Debug bool

	// AuthToken, when set, is sent as an Authorization bearer header.
	AuthToken string

	// Headers are extra headers sent with the connection handshake.
	Headers http.Header

	// Capabilities is the initial grant set. Nil grants the full known
	// vocabulary; an explicit empty slice grants nothing.
	Capabilities []Capability

	// Logger receives debug output. Nil disables logging unless Debug is set.
	Logger *slog.Logger

	// Core injects a custom core transport, bypassing the default websocket
	// transport. Intended for tests and alternative transports.
	Core CoreClient
}

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions builds an Options from the defaults plus the given options.
func applyOptions(opts []Option) *Options {
	options := &Options{AutoReconnect: true}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithSessionID resumes an existing session instead of creating a fresh one.
func WithSessionID(id string) Option {
	return func(o *Options) {
		o.SessionID = id
	}
}

// WithAutoReconnect enables or disables automatic reconnection after an
// unexpected connection loss. Enabled by default.
func WithAutoReconnect(enabled bool) Option {
	return func(o *Options) {
		o.AutoReconnect = enabled
	}
}

// WithReconnectDelay sets the initial backoff interval between reconnect
// attempts.
func WithReconnectDelay(delay time.Duration) Option {
	return func(o *Options) {
		o.ReconnectDelay = delay
	}
}

// WithMaxReconnectAttempts caps reconnection attempts.
func WithMaxReconnectAttempts(n int) Option {
	return func(o *Options) {
		o.MaxReconnectAttempts = n
	}
}

// WithConnectionTimeout bounds dial plus session handshake.
func WithConnectionTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ConnectionTimeout = timeout
	}
}

// WithDebug enables debug logging to stderr when no logger is set.
func WithDebug() Option {
	return func(o *Options) {
		o.Debug = true
	}
}

// WithAuthToken sends the token as an Authorization bearer header.
func WithAuthToken(token string) Option {
	return func(o *Options) {
		o.AuthToken = token
	}
}

// WithHeaders sets extra headers sent with the connection handshake.
func WithHeaders(headers http.Header) Option {
	return func(o *Options) {
		o.Headers = headers
	}
}

// WithCapabilities sets the initial capability grant set. Calling it with no
// arguments grants nothing; omitting it grants the full known vocabulary.
func WithCapabilities(caps ...Capability) Option {
	return func(o *Options) {
		if caps == nil {
			caps = []Capability{}
		}
		o.Capabilities = caps
	}
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCoreClient injects a custom core transport, bypassing the default
// websocket transport. The server URL is ignored when this is set.
func WithCoreClient(core CoreClient) Option {
	return func(o *Options) {
		o.Core = core
	}
}
