// SPDX-License-Identifier: MPL-2.0

// Package editor wraps invocation of the external save-editor binary. The
// binary is an opaque collaborator: savegate never interprets save-file
// formats itself, it only builds argv, spawns the process from the editor's
// bin directory (so the editor's relative data paths resolve) and captures
// whatever comes back.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is the sentinel error wrapped when an invocation exceeds the
// configured deadline. The process is not retried.
var ErrTimeout = errors.New("command timed out")

// Editor invokes the save-editor binary. The zero value is not usable; use New.
type Editor struct {
	// Binary is the executable path, resolved relative to Dir when not absolute.
	Binary string
	// Dir is the working directory for every invocation.
	Dir string
	// Timeout bounds each invocation. Zero means no bound.
	Timeout time.Duration
}

// New creates an Editor for the given binary, working directory and timeout.
func New(binary, dir string, timeout time.Duration) *Editor {
	return &Editor{Binary: binary, Dir: dir, Timeout: timeout}
}

// Run executes the editor with args appended after the binary name and
// captures output. A non-zero exit is a normal result, not an error; the
// returned error is non-nil only for spawn failures and timeouts.
func (e *Editor) Run(parent context.Context, args []string) (*Result, error) {
	ctx := parent
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, e.Timeout)
		defer cancel()
	}

	argv := append([]string{e.Binary}, args...)
	cmd := exec.CommandContext(ctx, e.Binary, args...)
	cmd.Dir = e.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Cmd:    argv,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// The expired deadline may be the caller's, not the editor's bound.
			if errors.Is(parent.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w (request deadline): %v", ErrTimeout, argv)
			}
			return nil, fmt.Errorf("%w after %s: %v", ErrTimeout, e.Timeout, argv)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("executing %v: %w", argv, err)
	}

	return result, nil
}

// Help runs the editor's help mode at the given command path and returns the
// concatenated stdout and stderr. The text is used regardless of exit code;
// only a spawn failure or timeout surfaces as an error.
func (e *Editor) Help(ctx context.Context, path []string) (string, error) {
	args := append([]string{"--help"}, path...)
	result, err := e.Run(ctx, args)
	if err != nil {
		return "", err
	}
	return result.Stdout + "\n" + result.Stderr, nil
}
