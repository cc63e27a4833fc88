// Package pagination parses page/size query parameters and slices item lists.
//
// Malformed parameters are never an error: they are coerced to defaults and
// clamped to the configured limits.
package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Default limits applied when no configuration overrides them.
const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 50
)

// Query parameter names.
const (
	PageParam = "page"
	SizeParam = "size"
)

// Limits bounds the page size accepted from clients.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits returns the stock limits: size defaults to 10, capped at 50.
func DefaultLimits() Limits {
	return Limits{DefaultSize: DefaultSize, MaxSize: MaxSize}
}

// Request is a normalized page request. Page is 1-based.
type Request struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Page is one slice of an item list together with its metadata.
type Page[T any] struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"list"`
}

// ParseRequest reads page and size from raw query values and normalizes them.
func ParseRequest(query url.Values, limits Limits) Request {
	req := Request{
		Page: parseInt(query.Get(PageParam), DefaultPage),
		Size: parseInt(query.Get(SizeParam), limits.DefaultSize),
	}
	return req.Normalize(limits)
}

// Normalize coerces the request into range: page < 1 becomes 1, size < 1
// becomes the default size and size above the maximum becomes the maximum.
func (r Request) Normalize(limits Limits) Request {
	if limits.MaxSize < 1 {
		limits.MaxSize = MaxSize
	}
	if limits.DefaultSize < 1 || limits.DefaultSize > limits.MaxSize {
		limits.DefaultSize = min(DefaultSize, limits.MaxSize)
	}

	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Size < 1 {
		r.Size = limits.DefaultSize
	}
	if r.Size > limits.MaxSize {
		r.Size = limits.MaxSize
	}
	return r
}

// Offset returns the index of the first item on the page.
// The result saturates instead of overflowing for very large pages.
func (r Request) Offset() int {
	if r.Page <= 1 || r.Size <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Size
}

// TotalPages returns ceil(total/size), or 0 when there is nothing to page.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns the page of items selected by req. A page past the end of
// the list yields an empty, non-nil slice. The returned slice shares its
// backing array with items.
func Paginate[T any](items []T, req Request) Page[T] {
	total := len(items)
	start := req.Offset()

	page := make([]T, 0)
	if start < total && req.Size > 0 {
		end := total
		if req.Size < total-start {
			end = start + req.Size
		}
		page = items[start:end]
	}

	return Page[T]{
		Page:       req.Page,
		Size:       req.Size,
		Total:      total,
		TotalPages: TotalPages(total, req.Size),
		Items:      page,
	}
}

// parseInt parses a base-10 integer, returning def for empty or malformed
// input. Values outside the int range saturate so that the usual clamping
// still applies to them.
func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(raw, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return def
	}
	return n
}
