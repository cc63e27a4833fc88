package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videopager/internal/config"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Addr:            "127.0.0.1:0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 2 * time.Second,
			AllowOrigins:    []string{"*"},
			DefaultFeed:     "videos",
		},
		Pagination: config.PaginationConfig{DefaultSize: 10, MaxSize: 50},
		Feeds: map[string]config.FeedConfig{
			"videos": {PrimaryURL: upstreamURL, Field: "videos", Timeout: 2 * time.Second, MaxBodyBytes: 1 << 20},
		},
		Cache:   config.CacheConfig{Addr: "127.0.0.1:1", TTL: time.Minute},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Log:     config.LogConfig{Level: "info"},
	}
}

func startServer(t *testing.T, cfg *config.Config) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(cfg, "test").Serve(ctx, l)
	}()

	return "http://" + l.Addr().String(), cancel, done
}

func fetchTotal(t *testing.T, url string) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data.Total
}

func TestServeUntilCancelled(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"videos":[{"id":1},{"id":2},{"id":3}]}`)
	}))
	defer upstream.Close()

	base, cancel, done := startServer(t, testConfig(upstream.URL))

	assert.Equal(t, 3, fetchTotal(t, base+"/api/paginate"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeWithUnreachableCache(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"videos":[1,2]}`)
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	cfg.Cache.Enabled = true

	base, cancel, done := startServer(t, cfg)
	defer func() {
		cancel()
		<-done
	}()

	assert.Equal(t, 2, fetchTotal(t, base+"/api/feeds/videos"))

	resp, err := http.Get(base + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "degraded", health.Status)
}

func TestStartListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := testConfig("http://127.0.0.1:1")
	cfg.Server.Addr = l.Addr().String()

	err = New(cfg, "test").Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
