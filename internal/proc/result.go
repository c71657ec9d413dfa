// SPDX-License-Identifier: MPL-2.0

package proc

import "strconv"

type (
	// ExitCode represents a process exit status code.
	// The zero value (0) means success.
	ExitCode int

	// Result contains the outcome of a single process invocation.
	Result struct {
		// ExitCode is the process exit status (0 on success).
		ExitCode ExitCode
		// Output is captured stdout (RunCapture only).
		Output string
		// ErrOutput is captured stderr (RunCapture only).
		ErrOutput string
		// Error is set only for infrastructure failures (spawn error,
		// cancellation); a plain non-zero exit leaves Error nil.
		Error error
	}
)

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Succeeded reports whether the process ran to completion with exit code 0.
func (r *Result) Succeeded() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}
