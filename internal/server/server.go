// Package server provides the main server orchestration for videopager.
//
// This package coordinates the startup and shutdown of all components:
//   - Redis document cache (optional)
//   - Feed registry and source chains
//   - HTTP API server management
//   - Graceful shutdown handling
//
// The server follows a structured lifecycle:
//  1. Cache connection
//  2. Feed registry construction
//  3. HTTP API server launch
//  4. Graceful shutdown on context cancellation
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"

	"videopager/internal/api"
	"videopager/internal/api/feeds"
	"videopager/internal/config"
	"videopager/internal/source"
)

// Server represents the main videopager server orchestrator.
type Server struct {
	// cfg holds the application configuration
	cfg *config.Config

	// version is reported by the health endpoint
	version string
}

// New creates a new server instance with the provided configuration.
//
// The server is not started until Start() is called.
func New(cfg *config.Config, version string) *Server {
	return &Server{
		cfg:     cfg,
		version: version,
	}
}

// Start listens on the configured address and serves until ctx is
// cancelled or the HTTP server fails.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, l)
}

// Serve runs the server on l. It blocks until:
//   - The provided context is cancelled (shutdown signal)
//   - The HTTP server encounters an unrecoverable error
//
// On cancellation it drains in-flight requests for at most
// server.shutdown_timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	// Phase 1: Connect the document cache
	var cache source.DocumentCache
	var pinger api.Pinger
	if s.cfg.Cache.Enabled {
		redisCache := source.NewRedisCache(s.cfg.Cache)
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close cache client")
			}
		}()

		// An unreachable cache is not fatal; lookups fall through to upstream.
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", s.cfg.Cache.Addr).Msg("Cache unreachable, serving from upstream")
		} else {
			log.Info().Str("addr", s.cfg.Cache.Addr).Dur("ttl", s.cfg.Cache.TTL).Msg("Cache connected")
		}
		cache, pinger = redisCache, redisCache
	}

	// Phase 2: Build feed source chains
	registry := feeds.NewRegistryFromConfig(s.cfg, cache)
	for _, name := range registry.Names() {
		feed := s.cfg.Feeds[name]
		log.Info().
			Str("feed", name).
			Str("primary_url", feed.PrimaryURL).
			Str("fallback_url", feed.FallbackURL).
			Str("field", feed.Field).
			Msg("Feed registered")
	}

	// Phase 3: Start HTTP server
	apiServer := api.NewServer(s.cfg, registry, pinger, s.version)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- apiServer.Serve(l)
	}()

	// Phase 4: Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received, starting graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
