// Package server exposes an engine over HTTP.
//
// Routes:
//
//	GET /api/status          engine status snapshot
//	GET /api/ideas           advance one tick; returns the batch and recent history
//	GET /api/recent?limit=N  recent history without ticking (default 100)
//	GET /health              liveness
//
// Every other path answers 404 {"error":"not_found"}.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/events"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/logging"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server serializes HTTP access to a single Engine.
//
// The engine has no internal locking, so every handler takes mu for the
// duration of its engine calls. Publishing happens after mu is released.
type Server struct {
	mu     sync.Mutex
	engine *engine.Engine

	publisher events.Publisher
	tokens    events.TokenGenerator
	logger    *slog.Logger
	router    *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithPublisher sets where tick batches are published. Default: NoopPublisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Server) {
		s.publisher = p
	}
}

// WithTokenGenerator sets the batch id source. Default: UUIDv7Generator.
func WithTokenGenerator(g events.TokenGenerator) Option {
	return func(s *Server) {
		s.tokens = g
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New builds a Server around eng.
func New(eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    eng,
		publisher: &events.NoopPublisher{},
		tokens:    events.UUIDv7Generator{},
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/api/status", s.handleStatus)
	r.GET("/api/ideas", s.handleIdeas)
	r.GET("/api/recent", s.handleRecent)
	r.GET("/health", s.handleHealth)
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not_found")
	})
	return r
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
