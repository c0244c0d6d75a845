// Package cli: init.go implements the "init" command.
//
// init prepares the current directory for deployments: it creates the
// apple_info/ tree that the deploy script reads credentials from and seeds
// apple_info/config.env from the installed template. It does not require
// an Xcode project, so it can be run before the project is created.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/apple-deploy/internal/model"
	"github.com/shinji-kodama/apple-deploy/internal/project"
)

// newInitCommand creates the "init" cobra command.
//
// Like the other meta-commands, init ignores arguments it does not know,
// so flag parsing is disabled: "-h" or a stray "--bogus" must not stop the
// scaffolding. The only recognized option is --force (-f).
func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   model.CmdInit + " [--force]",
		Short: commandSummaries[model.CmdInit],
		Long: `Create apple_info/, apple_info/certificates/ and apple_info/profiles/ in the
current directory and copy the installed configuration template to
apple_info/config.env.

An existing apple_info/config.env is kept unless --force (-f) is given.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, forceRequested(args))
		},
	}
}

// forceRequested reports whether args ask init to replace config.env.
// Everything else in args is ignored.
func forceRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--force", "-f", "--force=true":
			return true
		}
	}
	return false
}

// runInit scaffolds the project and prints the next steps.
func (a *app) runInit(cmd *cobra.Command, force bool) error {
	out := cmd.OutOrStdout()
	p := newPrinter(out)

	root, err := a.workDir()
	if err != nil {
		return err
	}

	// A broken layout only costs us the template; the directory tree is
	// still useful, so continue without it.
	var templatePath string
	if l, err := a.resolveLayout(); err == nil {
		templatePath = l.ConfigExample()
	} else {
		a.verbosef("install layout unavailable, skipping config template: %v", err)
	}

	fmt.Fprintf(out, "%sInitializing %s structure...\n", p.mark("🚀"), a.opts.Product.DisplayName)

	res, err := project.Scaffold(root, project.ScaffoldOptions{TemplatePath: templatePath, Force: force})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to initialize project", err)
	}
	for _, dir := range res.Dirs {
		a.verbosef("ensured %s", dir)
	}

	switch res.Config {
	case project.ConfigCreated:
		fmt.Fprintf(out, "%sCreated apple_info/config.env from template\n", p.mark("✅"))
	case project.ConfigOverwritten:
		fmt.Fprintf(out, "%sReplaced apple_info/config.env with template\n", p.mark("✅"))
	case project.ConfigKept:
		fmt.Fprintf(out, "%sKept existing apple_info/config.env (use --force to replace it)\n", p.mark("ℹ️"))
	case project.ConfigNoTemplate:
		a.verbosef("no config template at %s", templatePath)
	}

	printNextSteps(out, p, a.opts.Product.Binary)
	return nil
}

func printNextSteps(w io.Writer, p printer, binary string) {
	fmt.Fprintf(w, `
%sProject initialized successfully!

NEXT STEPS:
1. Add your Apple Developer credentials to apple_info/:
   - API key file: apple_info/AuthKey_XXXXX.p8
   - Certificates: apple_info/certificates/*.p12

2. Edit apple_info/config.env with your team details

3. Run your first deployment:
   %s deploy team_id="YOUR_TEAM_ID" app_identifier="com.your.app" ...

`, p.mark("✅"), binary)
}
