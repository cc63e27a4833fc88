package config

import (
	"strings"
	"time"
)

const (
	defaultFeedTimeout  = 10 * time.Second
	defaultMaxBodyBytes = 10 << 20
)

// normalizeConfig normalizes configuration values.
func normalizeConfig(c *Config) {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Server.DefaultFeed = strings.ToLower(strings.TrimSpace(c.Server.DefaultFeed))
	c.Metrics.Path = strings.TrimSpace(c.Metrics.Path)

	// Feed names are path segments, keep them case-insensitive
	feeds := make(map[string]FeedConfig, len(c.Feeds))
	for name, feed := range c.Feeds {
		feed.PrimaryURL = strings.TrimSpace(feed.PrimaryURL)
		feed.FallbackURL = strings.TrimSpace(feed.FallbackURL)
		feed.Field = strings.TrimSpace(feed.Field)
		if feed.Timeout == 0 {
			feed.Timeout = defaultFeedTimeout
		}
		if feed.MaxBodyBytes == 0 {
			feed.MaxBodyBytes = defaultMaxBodyBytes
		}
		feeds[strings.ToLower(strings.TrimSpace(name))] = feed
	}
	c.Feeds = feeds
}
