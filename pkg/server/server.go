package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/render"
	"github.com/vango-dev/regform/pkg/submit"
)

// Server serves the registration page and runs one page session per
// WebSocket connection.
type Server struct {
	config   *ServerConfig
	router   chi.Router
	upgrader websocket.Upgrader
	renderer *render.Renderer
	logger   *slog.Logger

	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*Session
	active   atomic.Int64
}

// New creates a new Server with the given configuration.
func New(config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	config.applyDefaults()

	s := &Server{
		config:   config,
		renderer: render.NewRenderer(render.RendererConfig{Pretty: config.DevMode}),
		logger:   slog.Default().With("component", "server"),
		sessions: make(map[string]*Session),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig { return s.config }

// ActiveSessions returns the number of open page sessions.
func (s *Server) ActiveSessions() int64 { return s.active.Load() }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Handler)
	}

	r.Get("/", s.servePage)
	r.Get(ClientPath, s.serveThinClient)
	r.Head(ClientPath, s.serveThinClient)
	r.Get(SocketPath, s.HandleWebSocket)
	r.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.config.Gatherer != nil {
		r.Handle(s.config.MetricsRoute, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// bind builds a fresh tree and binds a controller to it.
func (s *Server) bind(opts ...regform.Option) (*dom.Node, *regform.Controller, error) {
	root, err := s.config.Markup()
	if err != nil {
		return nil, nil, err
	}
	base := []regform.Option{
		regform.WithBindings(s.config.Bindings),
		regform.WithContainers(s.config.Containers...),
		regform.WithLogger(s.logger.With("component", "regform")),
	}
	if s.config.Metrics != nil {
		base = append(base, regform.WithObserver(s.config.Metrics))
	}
	c := regform.Bind(root, s.config.FormSelector, append(base, opts...)...)
	return root, c, nil
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	root, _, err := s.bind()
	if err != nil {
		s.logger.Error("markup error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.renderer.RenderPage(w, render.PageData{
		Title:        s.config.Title,
		Body:         dom.Main(dom.Data("regform", ""), root),
		StyleSheets:  s.config.StyleSheets,
		Styles:       []string{pageCSS},
		ClientScript: ClientPath,
		SocketPath:   SocketPath,
	})
	if err != nil {
		s.logger.Error("render error", "error", err, "path", r.URL.Path)
	}
}

const pageCSS = `.has-error input{border-color:#ff0000}`

// HandleWebSocket upgrades the connection and runs a page session until
// the client goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		if s.config.Metrics != nil {
			s.config.Metrics.WebSocketError("upgrade")
		}
		return
	}

	session := newSession(s, conn)
	_, c, err := s.bind(regform.WithSubmitter(s.submitterFor(session)))
	if err != nil {
		s.logger.Error("markup error", "error", err)
		session.sendError(err)
		conn.Close()
		return
	}
	session.controller = c

	s.track(session)
	defer s.untrack(session)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	session.ReadLoop(ctx)
}

func (s *Server) submitterFor(session *Session) regform.Submitter {
	return submit.Wrap(s.config.Submitter(session), s.config.SubmitMiddleware...)
}

func (s *Server) track(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.active.Add(1)
	if s.config.Metrics != nil {
		s.config.Metrics.SessionOpened()
	}
	s.logger.Debug("session opened", "session_id", session.ID)
}

func (s *Server) untrack(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()
	s.active.Add(-1)
	if s.config.Metrics != nil {
		s.config.Metrics.SessionClosed()
	}
	s.logger.Debug("session closed", "session_id", session.ID)
}

// checkOrigin accepts requests without an Origin header, origins listed in
// AllowedOrigins, and otherwise only the request's own host.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	if len(s.config.AllowedOrigins) > 0 {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// requestLogger logs each request with slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, session := range s.sessions {
		session.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
