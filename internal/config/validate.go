package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal", "panic"}

// validateConfig validates the configuration and returns an error if invalid.
func validateConfig(c *Config) error {
	for _, validate := range []func() error{
		func() error { return validateServerConfig(c.Server) },
		func() error { return validatePaginationConfig(c.Pagination) },
		func() error { return validateFeeds(c.Feeds, c.Server.DefaultFeed) },
		func() error { return validateCacheConfig(c.Cache) },
		func() error { return validateMetricsConfig(c.Metrics) },
		func() error { return validateLogConfig(c.Log) },
	} {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServerConfig validates server configuration.
func validateServerConfig(s ServerConfig) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	_, portStr, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return fmt.Errorf("server.addr invalid format: %w", err)
	}
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("server.addr invalid port: %w", err)
		}
		if port < 0 || port > 65535 {
			return fmt.Errorf("server.addr port out of range (0-65535)")
		}
	}

	if s.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be greater than 0")
	}
	if s.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be greater than 0")
	}
	if s.IdleTimeout <= 0 {
		return fmt.Errorf("server.idle_timeout must be greater than 0")
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be greater than 0")
	}
	if s.ReadTimeout > 5*time.Minute {
		return fmt.Errorf("server.read_timeout too large (max 5m)")
	}
	if s.WriteTimeout > 5*time.Minute {
		return fmt.Errorf("server.write_timeout too large (max 5m)")
	}

	if len(s.AllowOrigins) == 0 {
		return fmt.Errorf("server.allow_origins cannot be empty")
	}
	for _, origin := range s.AllowOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("server.allow_origins entry %q must be \"*\" or start with http:// or https://", origin)
		}
	}
	if s.DefaultFeed == "" {
		return fmt.Errorf("server.default_feed cannot be empty")
	}

	return nil
}

// validatePaginationConfig validates page size limits.
func validatePaginationConfig(p PaginationConfig) error {
	if p.MaxSize < 1 {
		return fmt.Errorf("pagination.max_size must be at least 1")
	}
	if p.DefaultSize < 1 || p.DefaultSize > p.MaxSize {
		return fmt.Errorf("pagination.default_size must be between 1 and max_size (%d)", p.MaxSize)
	}
	return nil
}

// validateFeeds validates every configured feed and the default feed reference.
func validateFeeds(feeds map[string]FeedConfig, defaultFeed string) error {
	if len(feeds) == 0 {
		return fmt.Errorf("feeds: at least one feed must be configured")
	}
	if _, ok := feeds[defaultFeed]; !ok {
		return fmt.Errorf("server.default_feed %q is not a configured feed", defaultFeed)
	}

	for name, feed := range feeds {
		if name == "" || strings.ContainsAny(name, "/ ") {
			return fmt.Errorf("feeds: invalid feed name %q", name)
		}
		if err := validateFeedURL(feed.PrimaryURL); err != nil {
			return fmt.Errorf("feeds.%s.primary_url: %w", name, err)
		}
		if feed.FallbackURL != "" {
			if err := validateFeedURL(feed.FallbackURL); err != nil {
				return fmt.Errorf("feeds.%s.fallback_url: %w", name, err)
			}
		}
		if feed.Field == "" {
			return fmt.Errorf("feeds.%s.field cannot be empty", name)
		}
		if feed.Timeout < 0 {
			return fmt.Errorf("feeds.%s.timeout cannot be negative", name)
		}
		if feed.Timeout > 2*time.Minute {
			return fmt.Errorf("feeds.%s.timeout too large (max 2m)", name)
		}
		if feed.MaxBodyBytes < 0 {
			return fmt.Errorf("feeds.%s.max_body_bytes cannot be negative", name)
		}
	}

	return nil
}

// validateFeedURL requires an absolute http or https URL.
func validateFeedURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	return nil
}

// validateCacheConfig validates the upstream document cache.
func validateCacheConfig(c CacheConfig) error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("cache.addr is required when cache is enabled")
	}
	if c.DB < 0 {
		return fmt.Errorf("cache.db cannot be negative")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be greater than 0")
	}
	if c.TTL > 24*time.Hour {
		return fmt.Errorf("cache.ttl too large (max 24h)")
	}
	return nil
}

// validateMetricsConfig validates the metrics endpoint.
func validateMetricsConfig(m MetricsConfig) error {
	if !m.Enabled {
		return nil
	}
	if !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}
	if strings.HasPrefix(m.Path, "/api/") {
		return fmt.Errorf("metrics.path cannot live under /api/")
	}
	return nil
}

// validateLogConfig validates log configuration.
func validateLogConfig(l LogConfig) error {
	if !slices.Contains(validLogLevels, l.Level) {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error, fatal, panic")
	}
	return nil
}
