// Package main is the entry point for the ios-deploy CLI.
//
// ios-deploy is the platform packaging of the same dispatcher as
// apple-deploy. It differs only in naming, version and in starting the
// deploy script from the install directory. All behavior lives in
// internal/cli; this file only wires the process into it.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by the release build. An empty version keeps the packaged product
// version.
package main

import (
	"os"
	"strconv"

	"github.com/shinji-kodama/apple-deploy/internal/cli"
	"github.com/shinji-kodama/apple-deploy/internal/layout"
	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// version, commit, and date are set at build time via ldflags. commit
// and date are only shown in verbose version output.
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Select the packaged variant and apply a release version override.
	product := model.IOSDeploy
	if version != "" {
		product.Version = version
	}

	// Inject build metadata into the CLI package, as for the version.
	cli.Commit = commit
	cli.Date = date

	// Verbose tracing is an environment switch: every argument after a
	// project command belongs to the deploy script. Unparsable values
	// leave it off.
	verbose, _ := strconv.ParseBool(os.Getenv(layout.EnvVerbose))

	// The layout is resolved lazily so help and version keep working on a
	// broken installation.
	rootCmd := cli.NewRootCommand(cli.Options{
		Product: product,
		Layout: func() (*layout.Layout, error) {
			return layout.Resolve(product, os.Getenv)
		},
		Verbose: verbose,
	})

	// Execute formats errors and returns the exit code, which for project
	// commands is the deploy script's own.
	os.Exit(cli.Execute(rootCmd, os.Args[1:]))
}
