package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/middleware"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/submit"
	"github.com/vango-dev/regform/pkg/toast"
)

// Route paths served by the server.
const (
	ClientPath  = "/_regform/client.js"
	SocketPath  = "/_regform/ws"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// SessionConfig holds configuration for individual page sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a frame from the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// AllowedOrigins lists origins accepted for WebSocket upgrades.
	// Empty means same host only; "*" allows any origin.
	AllowedOrigins []string

	// SessionConfig is the configuration for page sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout, ReadTimeout, WriteTimeout and IdleTimeout configure
	// the underlying http.Server. WriteTimeout does not apply to hijacked
	// WebSocket connections.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Form

	// Title is the page title. Default: "Регистрация".
	Title string

	// FormSelector locates the form inside the markup.
	// Default: regform.DefaultSelector.
	FormSelector string

	// Markup builds a fresh tree for each page view and each session.
	// Default: regform.DefaultMarkup.
	Markup func() (*dom.Node, error)

	// Bindings maps roles to selectors. Default: regform.DefaultBindings().
	Bindings regform.Bindings

	// Containers are the annotation container selectors.
	// Default: regform.DefaultContainers.
	Containers []string

	// StyleSheets are linked from the page head.
	StyleSheets []string

	// Submission

	// Submitter builds the side effect for one session. It receives the
	// session so it can show toasts. Default: submit.Acknowledge.
	Submitter func(toast.Emitter) regform.Submitter

	// SubmitMiddleware wraps every session's submitter.
	SubmitMiddleware []submit.Middleware

	// Observability

	// Metrics, when set, observes every controller and is exposed at
	// MetricsPath through Gatherer.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	// MetricsRoute is where Gatherer is served. Default: MetricsPath.
	MetricsRoute string

	// Tracer, when set, opens a span per browser event.
	Tracer *middleware.EventTracer

	// DevMode pretty-prints HTML and disables client caching.
	DevMode bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		SessionConfig:     DefaultSessionConfig(),
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		Title:             "Регистрация",
		FormSelector:      regform.DefaultSelector,
		Markup:            func() (*dom.Node, error) { return regform.DefaultMarkup(), nil },
		Bindings:          regform.DefaultBindings(),
		Containers:        append([]string(nil), regform.DefaultContainers...),
		Submitter:         submit.Acknowledge,
	}
}

// applyDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) applyDefaults() {
	d := DefaultServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.SessionConfig == nil {
		c.SessionConfig = d.SessionConfig
	} else {
		if c.SessionConfig.ReadTimeout == 0 {
			c.SessionConfig.ReadTimeout = d.SessionConfig.ReadTimeout
		}
		if c.SessionConfig.WriteTimeout == 0 {
			c.SessionConfig.WriteTimeout = d.SessionConfig.WriteTimeout
		}
		if c.SessionConfig.MaxMessageSize == 0 {
			c.SessionConfig.MaxMessageSize = d.SessionConfig.MaxMessageSize
		}
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.FormSelector == "" {
		c.FormSelector = d.FormSelector
	}
	if c.Markup == nil {
		c.Markup = d.Markup
	}
	if c.Bindings == nil {
		c.Bindings = d.Bindings
	}
	if len(c.Containers) == 0 {
		c.Containers = d.Containers
	}
	if c.Submitter == nil {
		c.Submitter = d.Submitter
	}
	if c.MetricsRoute == "" {
		c.MetricsRoute = MetricsPath
	}
}
