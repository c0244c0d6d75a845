// Package cli: help.go renders the usage text shown by "help", "--help",
// "-h" and an invocation without arguments.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// commandSummaries are the one-line descriptions in the COMMANDS section,
// keyed by command name.
var commandSummaries = map[string]string{
	model.CmdDeploy:            "Deploy app to TestFlight (same as build_and_upload)",
	model.CmdBuildAndUpload:    "Complete build and TestFlight upload",
	model.CmdSetupCertificates: "Set up certificates and provisioning profiles",
	model.CmdStatus:            "Show current configuration status",
	model.CmdInit:              "Initialize project with apple_info structure",
	model.CmdValidateMachine:   "Validate machine certificates",
	model.CmdHelp:              "Show this help message",
	model.CmdVersion:           "Show version information",
}

// usageOrder is the order commands appear in the usage text.
var usageOrder = []string{
	model.CmdDeploy,
	model.CmdBuildAndUpload,
	model.CmdSetupCertificates,
	model.CmdStatus,
	model.CmdInit,
	model.CmdValidateMachine,
	model.CmdHelp,
	model.CmdVersion,
}

var usageTemplate = template.Must(template.New("usage").Funcs(template.FuncMap{
	"pad": func(s string, width int) string {
		if len(s) >= width {
			return s + " "
		}
		return s + strings.Repeat(" ", width-len(s))
	},
}).Parse(`{{.Mark}}{{.Product.Banner}}
{{.Product.Summary}}

USAGE:
    {{.Bin}} <command> [options]

COMMANDS:
{{- range .Commands}}
    {{pad .Name 21}}{{.Summary}}
{{- end}}

REQUIRED PARAMETERS:
{{- range .Product.Required}}
    {{pad .Example 37}}{{.Description}}
{{- end}}

OPTIONAL PARAMETERS:
{{- range .Product.Optional}}
    {{pad .Example 44}}{{.Description}}
{{- end}}

EXAMPLES:
    # Initialize a new project
    {{.Bin}} init

    # Deploy to TestFlight
    {{.Bin}} deploy \
        team_id="{{.Product.ExampleTeamID}}" \
        app_identifier="com.myapp" \
        apple_id="dev@email.com" \
{{- if .Product.ExampleAPIKeyPath}}
        api_key_path="{{.Product.ExampleAPIKeyPath}}" \
{{- end}}
        api_key_id="ABC123" \
        api_issuer_id="12345678-1234-1234-1234-123456789012" \
        app_name="My App" \
        scheme="MyApp"

    # Deploy with enhanced TestFlight confirmation
    {{.Bin}} deploy \
        team_id="{{.Product.ExampleTeamID}}" \
        testflight_enhanced="true" \
        [... other parameters]

CONFIGURATION:
{{- if .GlobalConfig}}
    Global config: {{.GlobalConfig}}
{{- end}}
    Project config: ./apple_info/config.env

DOCUMENTATION:
    man {{.Bin}}        Show manual page
    {{.Bin}} help       Show this help

For detailed documentation, visit:
{{.Product.Homepage}}
`))

// usageCommand is one row of the COMMANDS section.
type usageCommand struct {
	// Name is the command token as typed by the user.
	Name string

	// Summary is the description column, from commandSummaries.
	Summary string
}

// usageData is the input of usageTemplate.
type usageData struct {
	// Mark is the banner decoration, empty when not on a terminal.
	Mark string

	// Bin is the installed binary name used in every example line.
	Bin string

	// Product supplies the banner, parameters and example values.
	Product model.Product

	// Commands lists the COMMANDS rows in usageOrder.
	Commands []usageCommand

	// GlobalConfig is the path of the installed config.env. It is empty
	// when the layout cannot be resolved, and the line is then omitted.
	GlobalConfig string
}

// printUsage writes the usage text. If the install layout cannot be
// resolved the global config line is omitted rather than failing help.
func (a *app) printUsage(w io.Writer) {
	data := usageData{
		Mark:    newPrinter(w).mark("📱"),
		Bin:     a.opts.Product.Binary,
		Product: a.opts.Product,
	}
	for _, name := range usageOrder {
		data.Commands = append(data.Commands, usageCommand{Name: name, Summary: commandSummaries[name]})
	}
	if l, err := a.resolveLayout(); err == nil {
		data.GlobalConfig = l.GlobalConfig()
	} else {
		a.verbosef("install layout unavailable: %v", err)
	}

	if err := usageTemplate.Execute(w, data); err != nil {
		// The template is static; a failure here means the writer broke.
		fmt.Fprintf(a.errOut, "failed to render usage: %v\n", err)
	}
}

// newHelpCommand replaces cobra's default help command. Any topic
// argument is ignored: there is a single usage page.
func newHelpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:                model.CmdHelp,
		Short:              commandSummaries[model.CmdHelp],
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, _ []string) {
			a.printUsage(cmd.OutOrStdout())
		},
	}
}
