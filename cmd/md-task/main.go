package main

import (
	"fmt"
	"os"

	app "github.com/valter-silva-au/md-task/internal"
	"github.com/valter-silva-au/md-task/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	logger := app.NewLogger(os.Stderr, app.ResolveLogLevel())

	if _, err := app.NewApp(app.ResolveConfigOptions(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing md-task: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
