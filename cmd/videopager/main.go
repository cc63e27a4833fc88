// Package main provides the entry point for videopager.
//
// videopager serves any remote JSON array as a paginated HTTP API.
package main

import (
	"errors"
	"fmt"
	"os"

	"videopager/internal/cli"
)

// Version information set during build time
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := cli.NewRootCmd(fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime))
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return cli.ExitCode(err)
	}
	return 0
}
