package model

import "fmt"

// ExitCode defines the process exit codes of the dispatcher.
// Scripts and CI systems rely on these to tell a usage problem apart
// from a failed deployment.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers unknown commands, a missing project context,
	// missing parameters (reported by the delegate) and startup failures.
	ExitGeneralError ExitCode = 1

	// ExitDeploymentFailed is reserved for the delegate: build or upload
	// failures. The dispatcher only passes it through.
	ExitDeploymentFailed ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Hint is an optional follow-up line printed after the message,
	// e.g. where to find usage information.
	Hint []string

	// Err is the underlying error, if any.
	Err error

	// Silent marks errors whose output has already reached the user,
	// such as a delegate exiting non-zero. Only the exit code matters.
	Silent bool
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string, hint ...string) *CLIError {
	return &CLIError{Code: code, Message: message, Hint: hint}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// NewExitStatus returns a silent CLIError that makes the process exit
// with the given status. It is used to propagate a delegate's exit code.
func NewExitStatus(code int) *CLIError {
	return &CLIError{
		Code:    ExitCode(code),
		Message: fmt.Sprintf("exit status %d", code),
		Silent:  true,
	}
}

// WithHint appends follow-up lines to the error and returns it.
func (e *CLIError) WithHint(lines ...string) *CLIError {
	e.Hint = append(e.Hint, lines...)
	return e
}
