package api

import (
	"github.com/gin-gonic/gin"

	"videopager/internal/api/feeds"
	"videopager/internal/metrics"
	"videopager/internal/pagination"
)

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	baseHandler := NewHandler(s.registry, s.cache, s.version)

	limits := pagination.Limits{
		DefaultSize: s.config.Pagination.DefaultSize,
		MaxSize:     s.config.Pagination.MaxSize,
	}
	feedHandler := feeds.NewHandler(s.registry, limits, allowOriginHeader(s.config.Server.AllowOrigins))

	apiGroup := s.router.Group("/api")

	apiGroup.GET("/ping", baseHandler.Ping)
	apiGroup.GET("/health", baseHandler.Health)

	apiGroup.GET("/feeds/:feed", feedHandler.Get)
	apiGroup.GET("/paginate", feedHandler.Default)

	if s.config.Metrics.Enabled {
		s.router.GET(s.config.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
}
