package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"videopager/internal/server"
)

func newServeCmd(opts *rootOptions, version string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, version).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "override server.addr")

	return cmd
}
