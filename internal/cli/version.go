package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// Build metadata injected from main via ldflags. Release builds set them;
// development builds keep the defaults and print only the banner.
var (
	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// newVersionCommand creates the "version" command. Extra arguments are
// ignored, like the other meta-commands.
func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                model.CmdVersion,
		Short:              commandSummaries[model.CmdVersion],
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, _ []string) {
			a.printVersion(cmd.OutOrStdout())
		},
	}
}

// printVersion writes the two-line version banner, e.g.
//
//	Apple Deploy v2.12.6
//	Built with ❤️  for iOS developers - Enhanced Clean Architecture
func (a *app) printVersion(w io.Writer) {
	fmt.Fprintln(w, a.opts.Product.Banner())
	fmt.Fprintln(w, a.opts.Product.Tagline)
	a.verbosef("commit %s, built %s", Commit, Date)
}
