// Package layout resolves where the package manager installed the
// deployment tool: the vendored sources, the configuration directory, the
// log directory, the gem home and the scripts directory.
//
// Paths are resolved once at startup, in increasing priority:
//   - defaults derived from the Homebrew prefix and the product name
//   - an optional install manifest (YAML, or JSON with comments)
//   - environment variable overrides
//
// The resolved Layout also builds the environment handed to the deploy
// script, so the dispatcher itself stays free of packaging concerns.
package layout
