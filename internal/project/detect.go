package project

import (
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// MarkerPatterns are the glob patterns, relative to the project root,
// whose match proves the directory is an Xcode project root.
var MarkerPatterns = []string{
	filepath.Join("*.xcodeproj", "project.pbxproj"),
	filepath.Join("*.xcworkspace", "contents.xcworkspacedata"),
}

// FindMarkers returns every project marker in dir, in pattern order.
//
// Entries whose top-level name starts with "." are skipped: a shell glob
// such as *.xcodeproj does not match hidden directories, and the check
// must behave the same as the wrapper users know.
func FindMarkers(dir string) ([]string, error) {
	var found []string
	for _, pattern := range MarkerPatterns {
		// filepath.Glob only fails on a malformed pattern, so an error
		// here is a programming mistake rather than an I/O problem.
		matches, err := filepath.Glob(filepath.Join(escapeGlob(dir), pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			rel, err := filepath.Rel(dir, m)
			if err != nil || strings.HasPrefix(rel, ".") {
				continue
			}
			found = append(found, m)
		}
	}
	return found, nil
}

// HasMarker reports whether dir is an Xcode project root.
func HasMarker(dir string) bool {
	markers, err := FindMarkers(dir)
	return err == nil && len(markers) > 0
}

// RequireProject returns a MissingProjectContext CLIError when dir holds
// neither an .xcodeproj nor an .xcworkspace marker.
func RequireProject(dir string) error {
	if HasMarker(dir) {
		return nil
	}
	return model.NewCLIError(model.ExitGeneralError,
		"not in an iOS project directory",
		"Please run this command from your iOS project root directory",
		"(directory containing .xcodeproj or .xcworkspace)",
	)
}

// escapeGlob quotes glob metacharacters in a literal directory path so
// that a project living in e.g. "App [beta]" is still probed correctly.
func escapeGlob(path string) string {
	if filepath.Separator == '\\' {
		// Backslash is the separator on Windows and cannot escape; Glob
		// has no metacharacter escaping there.
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
