package feeds

import (
	"slices"
	"strings"

	"videopager/internal/config"
	"videopager/internal/source"
)

// Source tiers used in logs and metrics.
const (
	TierPrimary  = "primary"
	TierFallback = "fallback"
)

// Registry maps feed names to their item sources.
type Registry struct {
	sources     map[string]source.ItemSource
	defaultFeed string
}

// NewRegistry creates an empty registry whose default feed is defaultFeed.
func NewRegistry(defaultFeed string) *Registry {
	return &Registry{
		sources:     make(map[string]source.ItemSource),
		defaultFeed: strings.ToLower(defaultFeed),
	}
}

// NewRegistryFromConfig builds one source chain per configured feed:
// an HTTP source on the primary URL, behind a fallback source when a
// fallback URL is set, behind a cache when cache is not nil.
func NewRegistryFromConfig(cfg *config.Config, cache source.DocumentCache) *Registry {
	r := NewRegistry(cfg.Server.DefaultFeed)

	for _, name := range cfg.FeedNames() {
		feed := cfg.Feeds[name]
		var src source.ItemSource = source.NewHTTPSource(name, TierPrimary, feed.PrimaryURL, feed)
		if feed.FallbackURL != "" {
			fallback := source.NewHTTPSource(name, TierFallback, feed.FallbackURL, feed)
			src = source.NewFallbackSource(name, src, fallback)
		}
		if cache != nil {
			src = source.NewCachedSource(name, src, cache, cfg.Cache.TTL)
		}
		r.Register(name, src)
	}

	return r
}

// Register adds or replaces a feed.
func (r *Registry) Register(name string, src source.ItemSource) {
	r.sources[strings.ToLower(name)] = src
}

// Get returns the source of the named feed. Lookup is case-insensitive.
func (r *Registry) Get(name string) (source.ItemSource, bool) {
	src, ok := r.sources[strings.ToLower(name)]
	return src, ok
}

// DefaultFeed returns the name served by the default route.
func (r *Registry) DefaultFeed() string {
	return r.defaultFeed
}

// Names returns the registered feed names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
