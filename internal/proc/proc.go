// SPDX-License-Identifier: MPL-2.0

// Package proc runs external tools as blocking child processes.
//
// Every pipeline step that shells out (pip, PyInstaller, the py launcher
// probe) goes through a Runner so tests can substitute a fake and the CLI
// layer never touches os/exec directly.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

type (
	// Spec describes a single child-process invocation.
	Spec struct {
		// Path is the program to run (absolute path or a name resolvable on PATH).
		Path string
		// Args are the program arguments (without the program name itself).
		Args []string
		// Dir is the working directory. Empty means inherit.
		Dir string
		// Env are extra KEY=VALUE pairs appended to the inherited environment.
		Env []string
		// Stdout and Stderr receive streamed output when running via Run.
		// Nil writers discard the stream.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes child processes. The pipeline is strictly sequential, so
	// every method blocks until the process exits.
	Runner interface {
		// Run executes the spec, streaming output to the spec's writers.
		Run(ctx context.Context, spec Spec) *Result
		// RunCapture executes the spec and captures stdout/stderr into the Result.
		RunCapture(ctx context.Context, spec Spec) *Result
	}

	execRunner struct{}
)

// NewRunner returns the production Runner backed by os/exec.
func NewRunner() Runner {
	return &execRunner{}
}

// Run executes the spec with streamed output.
func (r *execRunner) Run(ctx context.Context, spec Spec) *Result {
	cmd := r.command(ctx, spec)

	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	if cmd.Stderr == nil {
		cmd.Stderr = io.Discard
	}

	return resultFromRun(cmd.Run(), nil, nil)
}

// RunCapture executes the spec and captures output into the Result. When the
// spec also carries writers, output is teed to both.
func (r *execRunner) RunCapture(ctx context.Context, spec Spec) *Result {
	cmd := r.command(ctx, spec)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if spec.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, spec.Stdout)
	}
	if spec.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, spec.Stderr)
	}

	return resultFromRun(cmd.Run(), &stdout, &stderr)
}

func (r *execRunner) command(ctx context.Context, spec Spec) *exec.Cmd {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	return cmd
}

// resultFromRun converts an exec.Cmd.Run error into a Result, distinguishing
// a normal non-zero exit from an infrastructure failure (program not found,
// context cancelled, ...).
func resultFromRun(err error, stdout, stderr *bytes.Buffer) *Result {
	result := &Result{}
	if stdout != nil {
		result.Output = stdout.String()
	}
	if stderr != nil {
		result.ErrOutput = stderr.String()
	}

	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = ExitCode(exitErr.ExitCode())
		return result
	}

	result.ExitCode = 1
	result.Error = fmt.Errorf("failed to execute process: %w", err)
	return result
}
