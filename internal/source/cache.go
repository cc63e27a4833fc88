package source

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"videopager/internal/config"
	"videopager/internal/metrics"
)

// CacheKeyPrefix prefixes every cached feed key.
const CacheKeyPrefix = "videopager:feed:"

// DocumentCache stores extracted item arrays between requests.
type DocumentCache interface {
	// Get returns the cached value; found is false on a miss.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a DocumentCache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis client from the cache configuration.
// No connection is made until the first command.
func NewRedisCache(cfg config.CacheConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			MaxRetries:   1,
		}),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks that Redis is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedSource serves a feed's items from a DocumentCache and reads the
// wrapped source on a miss. Cache faults are logged and bypassed; only
// successful reads are stored.
type CachedSource struct {
	feed  string
	next  ItemSource
	cache DocumentCache
	ttl   time.Duration
}

// NewCachedSource wraps next with a cache entry that lives for ttl.
func NewCachedSource(feed string, next ItemSource, cache DocumentCache, ttl time.Duration) *CachedSource {
	return &CachedSource{
		feed:  feed,
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

// Key returns the cache key of the feed.
func (s *CachedSource) Key() string {
	return CacheKeyPrefix + s.feed
}

func (s *CachedSource) Items(ctx context.Context) ([]json.RawMessage, error) {
	if items, ok := s.lookup(ctx); ok {
		return items, nil
	}

	items, err := s.next.Items(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, items)
	return items, nil
}

// lookup reads the cached array, treating any fault as a miss.
func (s *CachedSource) lookup(ctx context.Context) ([]json.RawMessage, bool) {
	value, found, err := s.cache.Get(ctx, s.Key())
	if err != nil {
		metrics.ObserveCacheLookup(s.feed, metrics.CacheError)
		log.Warn().Err(err).Str("feed", s.feed).Msg("cache read failed, bypassing cache")
		return nil, false
	}
	if !found {
		metrics.ObserveCacheLookup(s.feed, metrics.CacheMiss)
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil || items == nil {
		metrics.ObserveCacheLookup(s.feed, metrics.CacheError)
		log.Warn().Err(err).Str("feed", s.feed).Msg("cached document is corrupt, bypassing cache")
		return nil, false
	}

	metrics.ObserveCacheLookup(s.feed, metrics.CacheHit)
	return items, true
}

// store writes items to the cache; failures only log.
func (s *CachedSource) store(ctx context.Context, items []json.RawMessage) {
	value, err := json.Marshal(items)
	if err != nil {
		log.Warn().Err(err).Str("feed", s.feed).Msg("failed to encode items for cache")
		return
	}
	if err := s.cache.Set(ctx, s.Key(), value, s.ttl); err != nil {
		log.Warn().Err(err).Str("feed", s.feed).Msg("cache write failed")
	}
}
