// SPDX-License-Identifier: MPL-2.0

package editor

// Result holds the outcome of one editor invocation.
type Result struct {
	// Cmd is the literal argv that was executed, binary included.
	Cmd []string
	// ExitCode is the process exit status.
	ExitCode int
	// Stdout is the captured standard output, verbatim.
	Stdout string
	// Stderr is the captured standard error, verbatim.
	Stderr string
}

// CombinedOutput returns stdout and stderr joined by a newline, the form the
// help-text crawler consumes.
func (r *Result) CombinedOutput() string {
	return r.Stdout + "\n" + r.Stderr
}
