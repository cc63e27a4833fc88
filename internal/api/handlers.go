// Package api wires the HTTP surface of videopager: middleware, the
// liveness endpoints and the feed routes.
//
// These endpoints are lightweight enough for load balancers and uptime
// monitors to poll.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"videopager/internal/api/feeds"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler manages the liveness endpoints.
type Handler struct {
	registry  *feeds.Registry
	cache     Pinger
	version   string
	startTime time.Time
}

// NewHandler initializes the liveness handler.
//
// Parameters:
//   - registry: Configured feeds, listed by /health
//   - cache: Document cache to probe (nil when caching is disabled)
//   - version: Build version reported by /health
func NewHandler(registry *feeds.Registry, cache Pinger, version string) *Handler {
	return &Handler{
		registry:  registry,
		cache:     cache,
		version:   version,
		startTime: time.Now(),
	}
}

// Ping handles GET /ping
//
// Response:
//   - 200 OK with {"message": "pong"}
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// Health handles GET /health
//
// Upstream feeds are not probed; only the cache, when enabled, is pinged.
// Overall status is "healthy" unless the cache is unreachable, in which case
// it is "degraded". Feeds keep working without the cache, so the status code
// is always 200.
func (h *Handler) Health(c *gin.Context) {
	cacheStatus, cacheResponseTime := h.checkCacheHealth(c.Request.Context())

	overallStatus := "healthy"
	if cacheStatus == "unhealthy" {
		overallStatus = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       overallStatus,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"uptime":       time.Since(h.startTime).String(),
		"version":      h.version,
		"feeds":        h.registry.Names(),
		"default_feed": h.registry.DefaultFeed(),
		"components": gin.H{
			"cache": gin.H{
				"status":           cacheStatus,
				"response_time_ms": cacheResponseTime,
			},
		},
	})
}

// checkCacheHealth pings the cache and measures the round trip.
//
// Returns:
//   - status: "disabled", "healthy" or "unhealthy"
//   - response_time_ms: round-trip time in milliseconds
func (h *Handler) checkCacheHealth(ctx context.Context) (string, int64) {
	if h.cache == nil {
		return "disabled", 0
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.cache.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()
	if err != nil {
		return "unhealthy", responseTime
	}

	return "healthy", responseTime
}
