// Package metrics holds the Prometheus collectors exported by videopager.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream fetch results.
const (
	ResultOK          = "ok"
	ResultFetchError  = "fetch_error"
	ResultFormatError = "format_error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videopager_http_requests_total",
			Help: "HTTP requests served, by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videopager_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Upstream metrics
var (
	UpstreamFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videopager_upstream_fetch_total",
			Help: "Upstream document fetches, by feed, source and result.",
		},
		[]string{"feed", "source", "result"},
	)

	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videopager_upstream_fetch_duration_seconds",
			Help:    "Upstream document fetch latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"feed", "source"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videopager_cache_lookups_total",
			Help: "Upstream document cache lookups, by feed and result.",
		},
		[]string{"feed", "result"},
	)
)

// ObserveFetch records one upstream fetch.
func ObserveFetch(feed, source, result string, elapsed time.Duration) {
	UpstreamFetchTotal.WithLabelValues(feed, source, result).Inc()
	UpstreamFetchDuration.WithLabelValues(feed, source).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records one cache lookup.
func ObserveCacheLookup(feed, result string) {
	CacheLookupsTotal.WithLabelValues(feed, result).Inc()
}

// Middleware records request count and latency per matched route.
// Unmatched requests are grouped under the "unmatched" route label.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
