// Package cli: deploy.go implements the project commands that are handed
// to the installed deploy script: deploy, build_and_upload,
// setup_certificates, validate_machine and status.
//
// The dispatcher does not interpret their key="value" parameters. It
// verifies the working directory is an Xcode project root, prepares the
// environment the script needs, runs it with the original arguments and
// exits with its status.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/apple-deploy/internal/delegate"
	"github.com/shinji-kodama/apple-deploy/internal/model"
	"github.com/shinji-kodama/apple-deploy/internal/project"
)

// newDelegateCommand creates the cobra command for one delegated name.
// Flag parsing is disabled so "-h", "--anything" and key="value" pairs
// all reach the script verbatim.
func newDelegateCommand(a *app, name string) *cobra.Command {
	return &cobra.Command{
		Use:                name + ` [key="value" ...]`,
		Short:              commandSummaries[name],
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := append([]string{name}, args...)
			return a.runDelegate(cmd, argv)
		},
	}
}

// runDelegate checks the project context and runs the deploy script with
// argv, the full original argument vector (command token first).
func (a *app) runDelegate(cmd *cobra.Command, argv []string) error {
	wd, err := a.workDir()
	if err != nil {
		return err
	}

	// The project check comes before anything touches the install, so a
	// wrong directory is reported even on a broken installation.
	if err := project.RequireProject(wd); err != nil {
		return err
	}

	l, err := a.resolveLayout()
	if err != nil {
		return err
	}

	dir := wd
	if a.opts.Product.RunFromInstallDir {
		dir = l.InstallDir
	}

	inv := delegate.Invocation{
		Path: l.DeployScript(),
		Args: argv,
		Env:  l.DelegateEnv(a.environ()),
		Dir:  dir,
	}
	a.verbosef("project root %s", wd)
	a.verbosef("running %s (in %s)", inv, dir)

	code, err := a.opts.Runner.Run(cmd.Context(), inv)
	if err != nil {
		return err
	}
	a.verbosef("deploy script exited with status %d", code)

	if code != int(model.ExitSuccess) {
		return model.NewExitStatus(code)
	}
	return nil
}
