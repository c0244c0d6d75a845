package delegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// Invocation describes one handoff to the deploy script.
type Invocation struct {
	// Path is the absolute path of the executable.
	Path string

	// Args is the full argument vector passed after the program name,
	// starting with the command token (e.g. "deploy").
	Args []string

	// Env is the complete environment in KEY=VALUE form.
	Env []string

	// Dir is the working directory of the child. Empty means the
	// dispatcher's own working directory.
	Dir string
}

// String renders the invocation for verbose logs.
func (inv Invocation) String() string {
	return strings.TrimSpace(inv.Path + " " + strings.Join(inv.Args, " "))
}

// Runner executes an Invocation and reports the child's exit status.
// A non-nil error means the child could not be started at all; a child
// that ran and failed is reported through the status alone.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (int, error)
}

// ExecRunner starts the delegate as a child process.
type ExecRunner struct {
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner wired to the process's standard
// streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts inv, waits for it, and returns its exit status.
//
// While the child runs, SIGINT is received and dropped: the terminal
// already delivers it to the whole foreground process group, and the
// dispatcher must outlive the child to report its status. SIGTERM is
// only sent to the dispatcher's PID, so it is forwarded.
//
// A child terminated by signal N is reported as 128+N, the shell
// convention.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	if err := checkExecutable(inv.Path); err != nil {
		return int(model.ExitGeneralError), err
	}

	// #nosec G204 -- the program path comes from the install layout
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Env = inv.Env
	cmd.Dir = inv.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := cmd.Start(); err != nil {
		return int(model.ExitGeneralError), model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to start %s", inv.Path), err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				if sig != os.Interrupt {
					_ = cmd.Process.Signal(sig)
				}
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)

	return exitStatus(err)
}

// exitStatus converts the result of cmd.Wait into a process exit status.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return int(model.ExitGeneralError), model.WrapCLIError(model.ExitGeneralError,
			"deploy script did not complete", err)
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return code, nil
	}
	// ExitCode is -1 when the child was killed by a signal.
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), nil
	}
	return int(model.ExitGeneralError), nil
}

// checkExecutable reports a missing delegate, or a directory in its place,
// with a message that names the path instead of the bare exec error.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("deploy script not found: %s", path),
			"Reinstall the package or set FL_SCRIPTS_DIR to the directory containing deploy.sh")
	}
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to inspect deploy script %s", path), err)
	}
	if info.IsDir() {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("deploy script is a directory: %s", path))
	}
	return nil
}
