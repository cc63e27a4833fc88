// Package cli implements the videopager command line.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"videopager/internal/config"
	"videopager/internal/logger"
)

// ExitError asks main to exit with Code after the command has already
// reported the failure.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

type rootOptions struct {
	configFile string
	logLevel   string
}

// NewRootCmd creates the root command with the serve, page and version
// subcommands.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "videopager",
		Short:         "Paginate remote JSON arrays over HTTP",
		Long:          "videopager fetches a remote JSON document, extracts an array field and serves it one page at a time.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Serve the configured feeds
  videopager serve --config config.yaml

  # Print the third page of the default feed
  videopager page --page 3 --size 10`,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default: ./config.yaml or ~/.videopager/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts, version), newPageCmd(opts), newVersionCmd(version))

	return cmd
}

// load reads configuration and configures the global logger.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	logger.SetupWithWriter(cfg.Log, cmd.ErrOrStderr())

	return cfg, nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "videopager "+version)
		},
	}
}
