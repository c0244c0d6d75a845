package delegate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// writeScript creates an executable shell script in a temp directory and
// returns its path. Tests using real scripts are skipped on Windows.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script delegates are not supported on Windows")
	}

	path := filepath.Join(t.TempDir(), "deploy.sh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// newTestRunner returns an ExecRunner writing into buffers.
func newTestRunner() (*ExecRunner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &ExecRunner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}, &stdout, &stderr
}

// TestExecRunner_PassesArgsVerbatim verifies that every argument,
// including ones with spaces and quotes, reaches the script unchanged.
func TestExecRunner_PassesArgsVerbatim(t *testing.T) {
	script := writeScript(t, `for a in "$@"; do printf '%s\n' "$a"; done`)
	r, stdout, _ := newTestRunner()

	args := []string{"deploy", `team_id="ABC123"`, "app_name=My App", "-h"}
	code, err := r.Run(context.Background(), Invocation{Path: script, Args: args})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	got := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	assert.Equal(t, args, got)
}

// TestExecRunner_ExitCodes verifies that the child's status is returned
// exactly, including the reserved deployment-failure code.
func TestExecRunner_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"success", "exit 0", 0},
		{"general error", "exit 1", 1},
		{"deployment failure", "exit 2", 2},
		{"arbitrary status", "exit 42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, tt.body)
			r, _, _ := newTestRunner()

			code, err := r.Run(context.Background(), Invocation{Path: script, Args: []string{"deploy"}})
			require.NoError(t, err, "a child that ran is never a start error")
			assert.Equal(t, tt.want, code)
		})
	}
}

// TestExecRunner_KilledBySignal checks the 128+N convention.
func TestExecRunner_KilledBySignal(t *testing.T) {
	script := writeScript(t, "kill -9 $$")
	r, _, _ := newTestRunner()

	code, err := r.Run(context.Background(), Invocation{Path: script})
	require.NoError(t, err)
	assert.Equal(t, 128+9, code)
}

// TestExecRunner_EnvAndDir verifies that the environment and working
// directory are applied to the child.
func TestExecRunner_EnvAndDir(t *testing.T) {
	script := writeScript(t, `echo "$FL_SCRIPTS_DIR"; pwd`)
	r, stdout, _ := newTestRunner()

	dir := t.TempDir()
	code, err := r.Run(context.Background(), Invocation{
		Path: script,
		Env:  []string{"FL_SCRIPTS_DIR=/pkg/scripts", "PATH=/usr/bin:/bin"},
		Dir:  dir,
	})
	require.NoError(t, err)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "/pkg/scripts", lines[0])

	// macOS temp dirs live behind a /var -> /private/var symlink.
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(lines[1])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestExecRunner_StreamsUnbuffered checks that stdin reaches the child
// and stderr is kept separate from stdout.
func TestExecRunner_StreamsUnbuffered(t *testing.T) {
	script := writeScript(t, `read line; echo "out:$line"; echo "err:$line" >&2`)
	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdin: strings.NewReader("hello\n"), Stdout: &stdout, Stderr: &stderr}

	code, err := r.Run(context.Background(), Invocation{Path: script})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "out:hello\n", stdout.String())
	assert.Equal(t, "err:hello\n", stderr.String())
}

// TestExecRunner_MissingScript verifies that a missing delegate is a
// start error naming the path.
func TestExecRunner_MissingScript(t *testing.T) {
	r, _, _ := newTestRunner()
	path := filepath.Join(t.TempDir(), "scripts", "deploy.sh")

	code, err := r.Run(context.Background(), Invocation{Path: path, Args: []string{"deploy"}})
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, err.Error(), path)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

// TestExecRunner_ScriptIsDirectory covers a scripts dir mistakenly
// pointing one level too deep.
func TestExecRunner_ScriptIsDirectory(t *testing.T) {
	r, _, _ := newTestRunner()

	code, err := r.Run(context.Background(), Invocation{Path: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

// TestExecRunner_NotExecutable verifies that a script without the exec
// bit fails to start rather than hanging or succeeding.
func TestExecRunner_NotExecutable(t *testing.T) {
	script := writeScript(t, "exit 0")
	require.NoError(t, os.Chmod(script, 0o644))
	r, _, _ := newTestRunner()

	code, err := r.Run(context.Background(), Invocation{Path: script})
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestInvocation_String(t *testing.T) {
	inv := Invocation{Path: "/pkg/scripts/deploy.sh", Args: []string{"deploy", "scheme=App"}}
	assert.Equal(t, "/pkg/scripts/deploy.sh deploy scheme=App", inv.String())
	assert.Equal(t, "/x", Invocation{Path: "/x"}.String())
}
