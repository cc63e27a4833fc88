package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"videopager/internal/config"
	"videopager/internal/metrics"
)

// UserAgent is sent with every upstream request.
const UserAgent = "videopager/1.0"

const (
	defaultMaxBodyBytes = 10 << 20
	maxRedirects        = 10
)

// HTTPSource reads a feed's JSON document from one URL.
type HTTPSource struct {
	feed         string
	tier         string
	target       string
	field        string
	maxBodyBytes int64
	client       *http.Client
}

// NewHTTPSource creates a source reading target for the named feed.
//
// Parameters:
//   - feed: Feed name, used for logs and metrics
//   - tier: "primary" or "fallback", used for logs and metrics
//   - target: Absolute URL of the upstream document
//   - cfg: Feed configuration (array field, timeout, body limit)
func NewHTTPSource(feed, tier, target string, cfg config.FeedConfig) *HTTPSource {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &HTTPSource{
		feed:         feed,
		tier:         tier,
		target:       target,
		field:        cfg.Field,
		maxBodyBytes: maxBody,
		client:       newClient(cfg.Timeout),
	}
}

// URL returns the upstream URL.
func (s *HTTPSource) URL() string {
	return s.target
}

// Items fetches the upstream document and extracts the feed's item array.
func (s *HTTPSource) Items(ctx context.Context) ([]json.RawMessage, error) {
	start := time.Now()

	body, err := s.fetch(ctx)
	if err != nil {
		metrics.ObserveFetch(s.feed, s.tier, metrics.ResultFetchError, time.Since(start))
		log.Debug().
			Err(err).
			Str("feed", s.feed).
			Str("source", s.tier).
			Str("url", s.target).
			Msg("upstream fetch failed")
		return nil, err
	}

	items, err := Extract(body, s.field)
	if err != nil {
		metrics.ObserveFetch(s.feed, s.tier, metrics.ResultFormatError, time.Since(start))
		log.Debug().
			Err(err).
			Str("feed", s.feed).
			Str("source", s.tier).
			Str("url", s.target).
			Msg("upstream document has unexpected format")
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.ObserveFetch(s.feed, s.tier, metrics.ResultOK, elapsed)
	log.Debug().
		Str("feed", s.feed).
		Str("source", s.tier).
		Int("items", len(items)).
		Int("body_length", len(body)).
		Dur("elapsed", elapsed).
		Msg("upstream document fetched")

	return items, nil
}

// fetch performs the GET and returns the response body.
func (s *HTTPSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := s.createRequest(ctx)
	if err != nil {
		return nil, &FetchError{URL: s.target, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.target, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &FetchError{URL: s.target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{URL: s.target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, &FetchError{URL: s.target, Err: fmt.Errorf("response body exceeds %d bytes", s.maxBodyBytes)}
	}

	return body, nil
}

// createRequest builds the upstream GET request.
func (s *HTTPSource) createRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.target, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	return req, nil
}

// newClient returns an HTTP client with the feed timeout and a redirect cap.
func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}
