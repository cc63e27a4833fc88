package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// FallbackSource reads a secondary source when the primary cannot be fetched.
//
// Only fetch failures trigger the fallback. A primary that answers with a
// malformed document is reported as is, and a cancelled request is never
// retried against the secondary.
type FallbackSource struct {
	feed      string
	primary   ItemSource
	secondary ItemSource
}

// NewFallbackSource creates a two-tier source for the named feed.
func NewFallbackSource(feed string, primary, secondary ItemSource) *FallbackSource {
	return &FallbackSource{
		feed:      feed,
		primary:   primary,
		secondary: secondary,
	}
}

// Items returns the primary's items, or the secondary's after a primary fetch failure.
func (s *FallbackSource) Items(ctx context.Context) ([]json.RawMessage, error) {
	items, err := s.primary.Items(ctx)
	if err == nil {
		return items, nil
	}
	if !IsFetchError(err) || ctx.Err() != nil {
		return nil, err
	}

	log.Warn().
		Err(err).
		Str("feed", s.feed).
		Msg("primary source failed, reading fallback source")

	items, fallbackErr := s.secondary.Items(ctx)
	if fallbackErr == nil {
		return items, nil
	}
	if IsFetchError(fallbackErr) {
		return nil, &FetchError{Err: fmt.Errorf("primary: %w; fallback: %w", err, fallbackErr)}
	}
	return nil, fallbackErr
}
