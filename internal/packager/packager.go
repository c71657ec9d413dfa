// SPDX-License-Identifier: MPL-2.0

// Package packager drives PyInstaller to produce the executable artifact.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/proc"
)

// Sentinel errors for errors.Is classification.
var (
	// ErrPackagingFailed wraps a non-zero exit from the packaging tool.
	ErrPackagingFailed = errors.New("packaging failed")
	// ErrPreflight wraps missing-input failures detected before the tool runs.
	ErrPreflight = errors.New("packaging preflight failed")
)

type (
	// PreflightError lists manifest inputs that do not exist on disk. The
	// packaging tool is never invoked when preflight fails.
	PreflightError struct {
		Missing []string
	}

	// ToolError reports a non-zero exit from PyInstaller. Output carries the
	// tool's diagnostic output verbatim.
	ToolError struct {
		ExitCode proc.ExitCode
		Output   string
	}

	// Packager invokes PyInstaller through the located interpreter.
	Packager struct {
		python string
		runner proc.Runner
		logger *log.Logger
		// Stdout/Stderr stream tool output as it happens.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Error implements the error interface.
func (e *PreflightError) Error() string {
	return fmt.Sprintf("packaging preflight failed, missing inputs: %s", strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrPreflight for errors.Is checks.
func (e *PreflightError) Unwrap() error { return ErrPreflight }

// Error implements the error interface. The tool's diagnostics are included
// unmodified so the operator sees exactly what PyInstaller reported.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("pyinstaller exited %s", e.ExitCode)
	if e.Output != "" {
		msg += ":\n" + e.Output
	}
	return msg
}

// Unwrap returns ErrPackagingFailed for errors.Is checks.
func (e *ToolError) Unwrap() error { return ErrPackagingFailed }

// New creates a Packager for the given interpreter path.
func New(python string, runner proc.Runner, logger *log.Logger) *Packager {
	if logger == nil {
		logger = log.Default()
	}
	return &Packager{python: python, runner: runner, logger: logger}
}

// Preflight verifies the entry script and every required data/binary src
// exist. OptionalData is exempt by contract.
func (p *Packager) Preflight(m *manifest.Manifest) error {
	var missing []string

	check := func(path string) {
		if _, err := os.Stat(resolve(m.Dir, path)); err != nil {
			missing = append(missing, path)
		}
	}

	check(m.Entry)
	for _, d := range m.Data {
		check(d.Src)
	}
	for _, b := range m.Binaries {
		check(b.Src)
	}
	if m.Icon != "" {
		check(m.Icon)
	}
	if m.HooksDir != "" {
		check(m.HooksDir)
	}

	if len(missing) > 0 {
		return &PreflightError{Missing: missing}
	}
	return nil
}

// Package runs PyInstaller against the manifest, blocking until it exits.
// Preflight runs first so missing inputs never reach the tool. A non-zero
// exit is fatal and surfaces the tool's diagnostics verbatim.
func (p *Packager) Package(ctx context.Context, m *manifest.Manifest, distDir, workDir string) error {
	if err := p.Preflight(m); err != nil {
		return err
	}

	args := BuildArgs(m, distDir, workDir)
	p.logger.Info("packaging", "name", m.Name, "entry", m.Entry)
	p.logger.Debug("pyinstaller args", "args", strings.Join(args, " "))

	result := p.runner.RunCapture(ctx, proc.Spec{
		Path:   p.python,
		Args:   append([]string{"-m", "PyInstaller"}, args...),
		Dir:    m.Dir,
		Stdout: p.Stdout,
		Stderr: p.Stderr,
	})

	if result.Error != nil {
		return fmt.Errorf("failed to run pyinstaller: %w", result.Error)
	}
	if !result.ExitCode.IsSuccess() {
		return &ToolError{ExitCode: result.ExitCode, Output: result.ErrOutput}
	}

	p.logger.Info("packaging complete", "dist", distDir)
	return nil
}
