package config

import "github.com/spf13/viper"

// DefaultFeedURL is the upstream document served by the built-in "videos" feed.
const DefaultFeedURL = "https://jsonapi-vdwkdcov.edgeone.cool/course/getHaokanVideos.json"

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.default_feed", "videos")

	// Pagination defaults
	v.SetDefault("pagination.default_size", 10)
	v.SetDefault("pagination.max_size", 50)

	// Built-in feed
	v.SetDefault("feeds.videos.primary_url", DefaultFeedURL)
	v.SetDefault("feeds.videos.fallback_url", "")
	v.SetDefault("feeds.videos.field", "videos")
	v.SetDefault("feeds.videos.timeout", "10s")
	v.SetDefault("feeds.videos.max_body_bytes", 10<<20)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "60s")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}
