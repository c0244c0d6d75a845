// Package cli implements the cobra-based command dispatcher for the
// deployment tool.
//
// Meta-commands (help, version, init) are answered here. Project commands
// (deploy, build_and_upload, setup_certificates, validate_machine, status)
// are checked for an Xcode project context and then handed to the installed
// deploy script, whose exit status becomes the dispatcher's own.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/apple-deploy/internal/delegate"
	"github.com/shinji-kodama/apple-deploy/internal/layout"
	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// Options carries everything the dispatcher needs from its environment.
// main populates it from the process; tests substitute fakes.
type Options struct {
	// Product selects the packaged variant (naming, version, delegate
	// conventions).
	Product model.Product

	// Layout resolves the installed paths. It is called lazily so that
	// help and version keep working when the install manifest is broken.
	Layout func() (*layout.Layout, error)

	// Runner executes the deploy script. Defaults to delegate.NewExecRunner().
	Runner delegate.Runner

	// WorkDir is the project directory. Empty means os.Getwd().
	WorkDir string

	// Environ is the base environment for the delegate. Nil means os.Environ().
	Environ []string

	// Verbose enables [verbose] trace lines on stderr.
	Verbose bool
}

// app is the per-invocation dispatcher state shared by all commands.
type app struct {
	opts Options

	// errOut receives verbose logs; it is set from the root command.
	errOut io.Writer
}

// NewRootCommand creates and configures the root cobra command.
//
// The root command disables flag parsing: the original wrapper treats the
// first token as the command, so "-h", "-v" or an unknown "--flag" must
// reach classification as plain tokens instead of being parsed by pflag.
// Arguments after a delegated command are likewise never parsed.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Runner == nil {
		opts.Runner = delegate.NewExecRunner()
	}
	a := &app{opts: opts, errOut: os.Stderr}
	binary := opts.Product.Binary

	rootCmd := &cobra.Command{
		Use:   binary + " <command> [options]",
		Short: opts.Product.Summary,

		// SilenceUsage keeps cobra from dumping usage on every error; the
		// usage page is only printed for the help spellings.
		SilenceUsage: true,

		// SilenceErrors leaves all error output to Execute, which knows
		// about hints and silent delegate exits.
		SilenceErrors: true,

		// The first token is classified by runRoot, flags included.
		DisableFlagParsing: true,

		// Any token may reach runRoot; unknown ones are reported there
		// rather than by cobra's "unknown command" suggestion logic.
		Args: cobra.ArbitraryArgs,

		// "completion" is not part of the command set and must be reported
		// as an unknown command.
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		// PersistentPreRun runs before every subcommand, so verbose lines
		// follow whatever writer the caller set with SetErr.
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.errOut = cmd.ErrOrStderr()
		},

		// RunE handles no arguments, flag-style aliases and unknown tokens.
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd, args)
		},
	}

	// Every help path (help command, help func) renders the product usage
	// page instead of cobra's generated one.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		a.printUsage(cmd.OutOrStdout())
	})
	rootCmd.SetHelpCommand(newHelpCommand(a))

	// Register subcommands. Meta-commands have their own files; every
	// delegated name shares the constructor in deploy.go.
	rootCmd.AddCommand(newVersionCommand(a))
	rootCmd.AddCommand(newInitCommand(a))
	for _, name := range model.DelegatedCommands {
		rootCmd.AddCommand(newDelegateCommand(a, name))
	}

	return rootCmd
}

// runRoot handles every invocation cobra did not route to a subcommand:
// no arguments, flag-style aliases, and unknown tokens.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == argsTerminator {
		args = args[1:]
	}

	switch model.ClassifyArgs(args) {
	case model.KindHelp:
		a.printUsage(cmd.OutOrStdout())
		return nil
	case model.KindVersion:
		a.printVersion(cmd.OutOrStdout())
		return nil
	case model.KindInit:
		return a.runInit(cmd, forceRequested(args[1:]))
	case model.KindDelegate:
		return a.runDelegate(cmd, args)
	default:
		return unknownCommand(a.opts.Product.Binary, args[0])
	}
}

// unknownCommand builds the UnknownCommand error for token. The token is
// printed as typed, without Go quoting, so the user sees exactly what was
// rejected.
func unknownCommand(binary, token string) error {
	return model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("unknown command \"%s\"", token),
		usageHint(binary))
}

func usageHint(binary string) string {
	return fmt.Sprintf("Run '%s help' for usage information", binary)
}

// Execute runs the root command with args (os.Args[1:] in production) and
// returns the process exit code. This is the main entry point called from
// main.go.
//
// CLIError types carry their own exit codes; other errors default to exit
// code 1. Silent CLIErrors (a delegate exiting non-zero) print nothing,
// since the delegate has already reported to the user.
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(routeArgs(rootCmd, args))

	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	errOut := rootCmd.ErrOrStderr()
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if !cliErr.Silent {
			printError(errOut, cliErr.Error(), cliErr.Hint)
		}
		return int(cliErr.Code)
	}

	printError(errOut, err.Error(), nil)
	return int(model.ExitGeneralError)
}

// routeArgs makes cobra honour "the first token is the command".
//
// Cobra looks for a subcommand name anywhere after skipping what look like
// flags, so "-x deploy", or deploy after an empty first argument, would
// reach deploy. Unless args[0]
// names a subcommand exactly, a "--" is prepended: cobra stops searching
// there and hands everything to the root command, which drops that one
// "--" and classifies args[0].
func routeArgs(rootCmd *cobra.Command, args []string) []string {
	if len(args) > 0 {
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == args[0] {
				return args
			}
		}
	}
	return append([]string{argsTerminator}, args...)
}

const argsTerminator = "--"

// printError writes "Error: <message>" followed by indented hint lines.
// On a terminal the line is marked with a cross for visibility.
func printError(w io.Writer, message string, hint []string) {
	p := newPrinter(w)
	fmt.Fprintf(w, "%sError: %s\n", p.mark("❌"), message)
	for _, line := range hint {
		fmt.Fprintf(w, "   %s\n", line)
	}
}

// verbosef prints a trace line to stderr only when verbose mode is on.
func (a *app) verbosef(format string, args ...interface{}) {
	if a.opts.Verbose {
		fmt.Fprintf(a.errOut, "[verbose] "+format+"\n", args...)
	}
}

// resolveLayout resolves the install layout.
func (a *app) resolveLayout() (*layout.Layout, error) {
	if a.opts.Layout == nil {
		return layout.Resolve(a.opts.Product, os.Getenv)
	}
	return a.opts.Layout()
}

// workDir returns the project directory for this invocation.
func (a *app) workDir() (string, error) {
	if a.opts.WorkDir != "" {
		return a.opts.WorkDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to determine the current directory", err)
	}
	return wd, nil
}

// environ returns the base environment for the delegate.
func (a *app) environ() []string {
	if a.opts.Environ != nil {
		return a.opts.Environ
	}
	return os.Environ()
}
