package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teemow/meetinvite/internal/instrumentation"
)

const (
	// DefaultReadHeaderTimeout bounds the time to read request headers.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds keep-alive connections.
	DefaultIdleTimeout = 120 * time.Second
)

// Config holds the dependencies of the HTTP server.
type Config struct {
	Addr    string
	Service Invitations
	Health  *HealthChecker
	Metrics *instrumentation.Metrics
	Logger  *slog.Logger

	// MCPHandler is mounted at /mcp when set.
	MCPHandler http.Handler
}

// HTTPServer serves the login, event and health routes.
type HTTPServer struct {
	mu         sync.Mutex
	addr       string
	handler    http.Handler
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

// NewHTTPServer builds the router.
func NewHTTPServer(cfg Config) (*HTTPServer, error) {
	if cfg.Service == nil {
		return nil, errors.New("service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Health == nil {
		cfg.Health = NewHealthChecker(nil, "")
	}

	h := &handlers{
		svc:      cfg.Service,
		logger:   cfg.Logger,
		newState: uuid.NewString,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /google", h.beginAuthorization)
	mux.HandleFunc("GET /google/redirect", h.completeAuthorization)
	mux.HandleFunc("POST /create", h.createEvent)
	cfg.Health.RegisterHealthEndpoints(mux)
	if cfg.MCPHandler != nil {
		mux.Handle("/mcp", cfg.MCPHandler)
	}

	return &HTTPServer{
		addr:    cfg.Addr,
		handler: chain(mux, Recover(cfg.Logger), Instrument(cfg.Metrics, cfg.Logger)),
		logger:  cfg.Logger,
	}, nil
}

// Handler returns the root handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves until Shutdown. It blocks.
func (s *HTTPServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", "addr", listener.Addr().String())
	return srv.Serve(listener)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	s.logger.Info("shutting down HTTP server")
	return srv.Shutdown(ctx)
}

// Addr returns the bound address once started, the configured one before.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}
