// Package source supplies the unpaginated item lists behind each feed.
//
// An ItemSource fetches one upstream JSON document and extracts its item
// array. Failures are reported as *FetchError (the upstream could not be
// read) or *FormatError (the document does not have the expected shape).
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ItemSource returns the full item list of a feed. Items are opaque JSON
// records in upstream order.
type ItemSource interface {
	Items(ctx context.Context) ([]json.RawMessage, error)
}

// ItemSourceFunc adapts a function to the ItemSource interface.
type ItemSourceFunc func(ctx context.Context) ([]json.RawMessage, error)

// Items calls f(ctx).
func (f ItemSourceFunc) Items(ctx context.Context) ([]json.RawMessage, error) {
	return f(ctx)
}

// FetchError reports that the upstream document could not be retrieved:
// a transport failure, a non-2xx status or an oversized body.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("upstream returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "upstream fetch failed"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError reports that the upstream document was read but the
// designated field is absent or not an array.
type FormatError struct {
	Field string
	Msg   string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsFormatError reports whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}
