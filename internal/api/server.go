package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"videopager/internal/api/feeds"
	"videopager/internal/config"
	"videopager/internal/metrics"
)

// Server represents the HTTP API server.
type Server struct {
	config   *config.Config
	registry *feeds.Registry
	cache    Pinger
	version  string
	router   *gin.Engine
	server   *http.Server
}

// NewServer creates a new HTTP API server instance.
//
// Parameters:
//   - cfg: Full configuration; server, pagination and metrics sections are used
//   - registry: Feeds served under /api/feeds
//   - cache: Document cache probed by /api/health, nil when disabled
//   - version: Build version reported by /api/health
//
// Returns:
//   - *Server: Initialized server instance
func NewServer(cfg *config.Config, registry *feeds.Registry, cache Pinger, version string) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   cfg,
		registry: registry,
		cache:    cache,
		version:  version,
		router:   gin.New(),
	}

	server.setupMiddleware()
	server.setupRoutes()

	server.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
//
// Returns:
//   - error: Any error that occurred during server startup
func (s *Server) Start() error {
	log.Info().Str("addr", s.config.Server.Addr).Msg("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Serve is Start on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	log.Info().Str("addr", l.Addr().String()).Msg("Starting HTTP server")

	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// setupMiddleware configures middleware for the Gin router.
func (s *Server) setupMiddleware() {
	// Request ID middleware (should be first)
	s.router.Use(RequestID())

	// Logging and metrics wrap recovery so panicking requests are recorded too
	s.router.Use(LoggerMiddleware())

	if s.config.Metrics.Enabled {
		s.router.Use(metrics.Middleware())
	}

	s.router.Use(PanicRecovery())

	s.router.Use(CORS(s.config.Server.AllowOrigins))
}
