package project

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

const templateContent = "TEAM_ID=\"YOUR_TEAM_ID\"\nAPP_NAME=\"Your App Name\"\n"

// touch creates an empty file at root/rel, including parent directories.
func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

// TestHasMarker covers the project marker glob against a variety of
// directory layouts.
func TestHasMarker(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  bool
	}{
		{"empty directory", nil, false},
		{"xcodeproj", []string{"sample.xcodeproj/project.pbxproj"}, true},
		{"xcworkspace", []string{"Sample.xcworkspace/contents.xcworkspacedata"}, true},
		{"both markers", []string{"A.xcodeproj/project.pbxproj", "A.xcworkspace/contents.xcworkspacedata"}, true},
		{"xcodeproj without pbxproj", []string{"sample.xcodeproj/README"}, false},
		{"workspace without data", []string{"Sample.xcworkspace/xcshareddata/x"}, false},
		{"nested project is not found", []string{"ios/App.xcodeproj/project.pbxproj"}, false},
		{"hidden project is not found", []string{".App.xcodeproj/project.pbxproj"}, false},
		{"wrong extension", []string{"sample.xcproj/project.pbxproj"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}
			assert.Equal(t, tt.want, HasMarker(dir))
		})
	}
}

// TestFindMarkers_GlobCharactersInPath ensures a project directory whose
// own name contains glob metacharacters is probed literally.
func TestFindMarkers_GlobCharactersInPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("glob escaping is not available on Windows")
	}
	dir := filepath.Join(t.TempDir(), "App [beta]")
	touch(t, dir, "App.xcodeproj/project.pbxproj")

	markers, err := FindMarkers(dir)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, filepath.Join(dir, "App.xcodeproj", "project.pbxproj"), markers[0])
}

// TestRequireProject checks the MissingProjectContext error.
func TestRequireProject(t *testing.T) {
	dir := t.TempDir()

	err := RequireProject(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "not in an iOS project directory")
	assert.Len(t, cliErr.Hint, 2)

	touch(t, dir, "sample.xcodeproj/project.pbxproj")
	assert.NoError(t, RequireProject(dir))
}

// TestScaffold_WithTemplate verifies directory creation and the template
// copy in an empty project.
func TestScaffold_WithTemplate(t *testing.T) {
	root := t.TempDir()
	template := filepath.Join(t.TempDir(), "config.example")
	require.NoError(t, os.WriteFile(template, []byte(templateContent), 0o644))

	res, err := Scaffold(root, ScaffoldOptions{TemplatePath: template})
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(root, "apple_info", "certificates"))
	assert.DirExists(t, filepath.Join(root, "apple_info", "profiles"))
	assert.Equal(t, ConfigCreated, res.Config)

	data, err := os.ReadFile(filepath.Join(root, "apple_info", "config.env"))
	require.NoError(t, err)
	assert.Equal(t, templateContent, string(data))
}

// TestScaffold_NoTemplate verifies that a missing template still yields
// the directory tree but no config.env.
func TestScaffold_NoTemplate(t *testing.T) {
	root := t.TempDir()

	res, err := Scaffold(root, ScaffoldOptions{TemplatePath: filepath.Join(root, "missing", "config.example")})
	require.NoError(t, err)

	assert.Equal(t, ConfigNoTemplate, res.Config)
	assert.DirExists(t, filepath.Join(root, "apple_info", "certificates"))
	assert.DirExists(t, filepath.Join(root, "apple_info", "profiles"))
	assert.NoFileExists(t, filepath.Join(root, "apple_info", "config.env"))

	res, err = Scaffold(root, ScaffoldOptions{})
	require.NoError(t, err)
	assert.Equal(t, ConfigNoTemplate, res.Config)
}

// TestScaffold_Idempotent runs Scaffold twice and checks that an edited
// config.env survives unless Force is set.
func TestScaffold_Idempotent(t *testing.T) {
	root := t.TempDir()
	template := filepath.Join(t.TempDir(), "config.example")
	require.NoError(t, os.WriteFile(template, []byte(templateContent), 0o644))

	_, err := Scaffold(root, ScaffoldOptions{TemplatePath: template})
	require.NoError(t, err)

	configPath := filepath.Join(root, "apple_info", "config.env")
	require.NoError(t, os.WriteFile(configPath, []byte("TEAM_ID=\"ABC\"\n"), 0o644))

	res, err := Scaffold(root, ScaffoldOptions{TemplatePath: template})
	require.NoError(t, err)
	assert.Equal(t, ConfigKept, res.Config)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "TEAM_ID=\"ABC\"\n", string(data))

	res, err = Scaffold(root, ScaffoldOptions{TemplatePath: template, Force: true})
	require.NoError(t, err)
	assert.Equal(t, ConfigOverwritten, res.Config)
	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, templateContent, string(data))
}

// TestScaffold_BlockedByFile verifies that a regular file named
// apple_info makes Scaffold fail instead of silently succeeding.
func TestScaffold_BlockedByFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "apple_info")

	_, err := Scaffold(root, ScaffoldOptions{})
	assert.Error(t, err)
}
