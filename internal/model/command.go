package model

// CommandKind is the result of classifying the first argument of an
// invocation. Classification is stateless: every invocation goes
//
//	Classify → Help | Version | Init | Delegate (after the project check) | Unknown
//
// and terminates.
type CommandKind string

const (
	// KindHelp prints usage text.
	KindHelp CommandKind = "help"

	// KindVersion prints the version banner.
	KindVersion CommandKind = "version"

	// KindInit scaffolds the apple_info directory in the working directory.
	KindInit CommandKind = "init"

	// KindDelegate hands the invocation to the installed deploy script.
	KindDelegate CommandKind = "delegate"

	// KindUnknown is any token not in the command set.
	KindUnknown CommandKind = "unknown"
)

// String returns the string representation of CommandKind.
func (k CommandKind) String() string {
	return string(k)
}

// RequiresProject reports whether the command may only run from an
// Xcode project root. Meta-commands never need a project.
func (k CommandKind) RequiresProject() bool {
	return k == KindDelegate
}

// Command names and flag aliases understood by the dispatcher.
const (
	CmdHelp              = "help"
	CmdVersion           = "version"
	CmdInit              = "init"
	CmdDeploy            = "deploy"
	CmdBuildAndUpload    = "build_and_upload"
	CmdSetupCertificates = "setup_certificates"
	CmdValidateMachine   = "validate_machine"
	CmdStatus            = "status"
)

// DelegatedCommands lists, in usage order, the commands that are handed
// to the deploy script.
var DelegatedCommands = []string{
	CmdDeploy,
	CmdBuildAndUpload,
	CmdSetupCertificates,
	CmdStatus,
	CmdValidateMachine,
}

// Classify maps the first token of an invocation to its CommandKind.
// An empty token (no arguments, or an explicit "") means help.
func Classify(token string) CommandKind {
	switch token {
	case "", CmdHelp, "--help", "-h":
		return KindHelp
	case CmdVersion, "--version", "-v":
		return KindVersion
	case CmdInit:
		return KindInit
	case CmdDeploy, CmdBuildAndUpload, CmdSetupCertificates, CmdValidateMachine, CmdStatus:
		return KindDelegate
	default:
		return KindUnknown
	}
}

// ClassifyArgs classifies an argument vector by its first element.
func ClassifyArgs(args []string) CommandKind {
	if len(args) == 0 {
		return KindHelp
	}
	return Classify(args[0])
}
