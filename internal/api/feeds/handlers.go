// Package feeds implements the paginated feed endpoints.
//
// Every endpoint follows the same flow:
//   - parse and normalize page/size from the query string
//   - read the feed's full item list from its source
//   - slice the requested page and wrap it in the response envelope
//
// Upstream failures become a 500 envelope; malformed paging parameters are
// silently normalized.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"videopager/internal/api/types"
	"videopager/internal/pagination"
	"videopager/internal/source"
)

// Handler serves the feed endpoints.
type Handler struct {
	registry    *Registry
	limits      pagination.Limits
	allowOrigin string
}

// NewHandler creates a feed handler.
//
// Parameters:
//   - registry: Feed name to item source mapping
//   - limits: Page size default and cap
//   - allowOrigin: Value of Access-Control-Allow-Origin set on every feed
//     response; empty leaves the header to the CORS middleware
func NewHandler(registry *Registry, limits pagination.Limits, allowOrigin string) *Handler {
	return &Handler{
		registry:    registry,
		limits:      limits,
		allowOrigin: allowOrigin,
	}
}

// Handle paginates the items of src according to query and returns the HTTP
// status together with the envelope to send.
//
// It performs exactly one read of src and no retries.
func Handle(ctx context.Context, query url.Values, src source.ItemSource, limits pagination.Limits) (int, types.Response) {
	req := pagination.ParseRequest(query, limits)

	items, err := src.Items(ctx)
	if err != nil {
		resp := ErrorEnvelope(err)
		return resp.Code, resp
	}

	page := pagination.Paginate(items, req)
	return http.StatusOK, types.SuccessResponse(page)
}

// ErrorEnvelope converts an item source error into the error envelope.
func ErrorEnvelope(err error) types.Response {
	var fetchErr *source.FetchError
	var formatErr *source.FormatError

	switch {
	case errors.As(err, &fetchErr):
		return types.FetchErrorResponse(err.Error())
	case errors.As(err, &formatErr):
		return types.FormatErrorResponse(err.Error())
	default:
		return types.InternalErrorResponse(err.Error())
	}
}

// Get handles GET /api/feeds/:feed
//
// Query parameters:
//   - page (default: 1, min: 1)
//   - size (default: 10, clamped to [1, 50])
//
// Returns:
//   - 200 OK with the page envelope (an empty list past the last page)
//   - 404 Not Found for an unknown feed
//   - 500 Internal Server Error when the upstream cannot be read or parsed
func (h *Handler) Get(c *gin.Context) {
	h.serve(c, c.Param("feed"))
}

// Default handles GET /api/paginate, serving the configured default feed.
func (h *Handler) Default(c *gin.Context) {
	h.serve(c, h.registry.DefaultFeed())
}

func (h *Handler) serve(c *gin.Context, feed string) {
	if h.allowOrigin != "" {
		c.Header("Access-Control-Allow-Origin", h.allowOrigin)
	}

	src, ok := h.registry.Get(feed)
	if !ok {
		resp := types.NotFoundErrorResponse(feed)
		c.JSON(resp.Code, resp)
		return
	}

	status, resp := Handle(c.Request.Context(), c.Request.URL.Query(), src, h.limits)
	if !resp.OK() {
		log.Error().
			Str("feed", feed).
			Int("code", resp.Code).
			Str("error", resp.Error).
			Str("request_id", c.GetString("request_id")).
			Msg(resp.Message)
	}

	c.JSON(status, resp)
}

// Page is the success payload of a feed endpoint.
type Page = pagination.Page[json.RawMessage]
