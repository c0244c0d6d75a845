// Package model defines the domain types and value objects for the
// apple-deploy dispatcher.
//
// This package contains pure data structures with no external dependencies.
// Nothing here is persisted: an invocation is classified, handled and
// discarded, and the project context is recomputed every time.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
