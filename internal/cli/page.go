package cli

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"videopager/internal/api/feeds"
	"videopager/internal/api/types"
	"videopager/internal/pagination"
	"videopager/internal/source"
)

func newPageCmd(opts *rootOptions) *cobra.Command {
	var page, size string

	cmd := &cobra.Command{
		Use:   "page [feed]",
		Short: "Fetch one page of a feed and print the response envelope",
		Long: `Fetches the feed once, exactly as GET /api/feeds/<feed> would, and prints
the JSON envelope. Without a feed name the configured default feed is used.
The exit status is 1 when the envelope code is not 200.`,
		Example: `  videopager page videos --page 2 --size 20`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			var cache source.DocumentCache
			if cfg.Cache.Enabled {
				redisCache := source.NewRedisCache(cfg.Cache)
				defer redisCache.Close()
				cache = redisCache
			}
			registry := feeds.NewRegistryFromConfig(cfg, cache)

			name := registry.DefaultFeed()
			if len(args) == 1 {
				name = args[0]
			}

			query := url.Values{}
			if page != "" {
				query.Set(pagination.PageParam, page)
			}
			if size != "" {
				query.Set(pagination.SizeParam, size)
			}

			resp := types.NotFoundErrorResponse(name)
			if src, ok := registry.Get(name); ok {
				limits := pagination.Limits{DefaultSize: cfg.Pagination.DefaultSize, MaxSize: cfg.Pagination.MaxSize}
				_, resp = feeds.Handle(cmd.Context(), query, src, limits)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}

			if resp.Code != http.StatusOK {
				log.Debug().Str("feed", name).Int("code", resp.Code).Msg("page request failed")
				return &ExitError{Code: 1, Reason: resp.Message}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "", "page number (default 1)")
	cmd.Flags().StringVarP(&size, "size", "s", "", "page size (default 10, max 50)")

	return cmd
}
