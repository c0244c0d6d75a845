// Package delegate runs the installed deploy script on behalf of the
// dispatcher.
//
// The script is started as a child process via os/exec. It inherits
// stdin, stdout and stderr unchanged. The dispatcher blocks until it
// exits and then exits with the same status, so from the caller's point
// of view the handoff is indistinguishable from exec-ing the script
// directly. Doing it as a child rather than replacing the process image
// keeps the behaviour identical on every platform Go supports.
package delegate
