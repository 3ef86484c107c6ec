package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	clientdist "github.com/vango-dev/sticky/client/dist"
	"github.com/vango-dev/sticky/pkg/middleware"
	"github.com/vango-dev/sticky/pkg/sticky"
)

const tracerName = "github.com/vango-dev/sticky/pkg/server"

// Server serves the demo page, the browser hook and the session socket.
type Server struct {
	config   *ServerConfig
	router   chi.Router
	upgrader websocket.Upgrader
	metrics  *Metrics
	tracer   trace.Tracer
	logger   *slog.Logger

	mu       sync.RWMutex
	sticky   sticky.Config
	sessions map[string]*Session
	wg       sync.WaitGroup

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records Prometheus metrics and serves them at
// ServerConfig.MetricsPath.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger.With("component", "server")
		}
	}
}

// New creates a new Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		tracer:   otel.Tracer(tracerName),
		logger:   slog.Default().With("component", "server"),
		sticky:   config.Sticky,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(middleware.WithTracer(s.tracer)))
	r.Use(middleware.Logger(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/client.js", s.handleClient)
	r.Get("/ws", s.HandleWebSocket)
	if s.metrics != nil && s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, s.metrics.Handler())
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientdist.StickyJS)
}

// HandleWebSocket upgrades the request and runs a session until the client
// disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}

	session := newSession(conn, s.config, s.StickyConfig(), s.metrics, s.tracer, s.logger)
	session.parent = trace.SpanContextFromContext(r.Context())
	s.track(session)
	defer s.untrack(session)

	s.logger.Info("session opened", "session_id", session.ID, "remote", r.RemoteAddr)

	go session.WriteLoop()
	go session.EventLoop()
	session.ReadLoop()
}

func (s *Server) track(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.wg.Add(1)
	s.mu.Unlock()
	s.metrics.sessionOpened()
}

func (s *Server) untrack(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()
	s.metrics.sessionClosed()
	s.wg.Done()
}

// StickyConfig returns the configuration new sessions start with.
func (s *Server) StickyConfig() sticky.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sticky
}

// Configure replaces the element configuration and pushes it to every live
// session.
func (s *Server) Configure(cfg sticky.Config) {
	s.mu.Lock()
	s.sticky = cfg
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Reconfigure(cfg)
	}
	s.logger.Info("configuration updated", "sessions", len(sessions))
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run serves on config.Address until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.RLock()
	for _, session := range s.sessions {
		session.Close()
	}
	s.mu.RUnlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("server shutdown complete")
	return nil
}
