package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videopager/internal/config"
)

type memoryCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setKeys = append(c.setKeys, key)
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestCachedSourceMissThenHit(t *testing.T) {
	cache := newMemoryCache()
	next := &countingSource{items: rawItems(`{"id":1}`, `{"id":2}`)}
	src := NewCachedSource("videos", next, cache, time.Minute)

	items, err := src.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "videopager:feed:videos", src.Key())
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(cache.values[src.Key()]))
	assert.Equal(t, time.Minute, cache.ttls[src.Key()])

	items, err = src.Items(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.JSONEq(t, `{"id":2}`, string(items[1]))
	assert.Equal(t, 1, next.calls)
}

func TestCachedSourceDoesNotCacheFailures(t *testing.T) {
	cache := newMemoryCache()
	next := &countingSource{err: &FetchError{StatusCode: 502}}
	src := NewCachedSource("videos", next, cache, time.Minute)

	_, err := src.Items(context.Background())
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Empty(t, cache.setKeys)
}

func TestCachedSourceBypassesBrokenCache(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("connection reset")
	cache.setErr = errors.New("connection reset")
	next := &countingSource{items: rawItems(`1`)}

	items, err := NewCachedSource("videos", next, cache, time.Minute).Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rawItems(`1`), items)
	assert.Len(t, cache.setKeys, 1)
}

func TestCachedSourceIgnoresCorruptEntry(t *testing.T) {
	cache := newMemoryCache()
	cache.values["videopager:feed:videos"] = []byte(`{"not":"an array"}`)
	next := &countingSource{items: rawItems(`1`)}

	items, err := NewCachedSource("videos", next, cache, time.Minute).Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rawItems(`1`), items)
	assert.Equal(t, 1, next.calls)
	assert.JSONEq(t, `[1]`, string(cache.values["videopager:feed:videos"]))
}

func TestCachedSourceCachesEmptyList(t *testing.T) {
	cache := newMemoryCache()
	next := &countingSource{items: rawItems()}
	src := NewCachedSource("videos", next, cache, time.Minute)

	_, err := src.Items(context.Background())
	require.NoError(t, err)

	items, err := src.Items(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 1, next.calls)
}

func TestRedisCacheUnreachableFallsThrough(t *testing.T) {
	cache := NewRedisCache(config.CacheConfig{Addr: "127.0.0.1:1", TTL: time.Minute})
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.Error(t, cache.Ping(ctx))

	_, found, err := cache.Get(ctx, "videopager:feed:videos")
	require.Error(t, err)
	assert.False(t, found)

	next := &countingSource{items: rawItems(`1`, `2`)}
	items, err := NewCachedSource("videos", next, cache, time.Minute).Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
