// SPDX-License-Identifier: MPL-2.0

// Package pip ensures the interpreter's package environment satisfies a
// declared dependency set.
//
// Installation is modeled as an explicit idempotent "ensure installed"
// operation returning a per-entry result, rather than ambient shell state:
// re-running against a satisfied environment reports AlreadySatisfied and
// performs no installs.
package pip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/proc"
)

// ErrRequiredDependencyInstall is the sentinel error wrapped when a
// non-optional package fails to install.
var ErrRequiredDependencyInstall = errors.New("required dependency failed to install")

type (
	// Outcome classifies what EnsurePackages did for one entry.
	Outcome int

	// EntryResult is the per-package result of an ensure-installed pass.
	EntryResult struct {
		// Spec is the pip requirement specifier that was ensured.
		Spec string
		// Optional mirrors the manifest entry's optional flag.
		Optional bool
		// Outcome says whether the entry was installed, already satisfied,
		// or failed.
		Outcome Outcome
		// Err carries the failure detail for OutcomeFailed entries.
		Err error
	}

	// RequiredInstallError reports a fatal install failure with pip's
	// diagnostic output.
	RequiredInstallError struct {
		Spec   string
		Output string
	}

	// Installer drives pip through a located interpreter.
	Installer struct {
		python string
		runner proc.Runner
		logger *log.Logger
		// Stdout/Stderr stream pip output when set (verbose runs).
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Outcome values.
const (
	OutcomeInstalled Outcome = iota
	OutcomeAlreadySatisfied
	OutcomeFailed
)

// String returns a log-friendly outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeAlreadySatisfied:
		return "already satisfied"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Error implements the error interface.
func (e *RequiredInstallError) Error() string {
	msg := fmt.Sprintf("required dependency %s failed to install", e.Spec)
	if e.Output != "" {
		msg += ":\n" + e.Output
	}
	return msg
}

// Unwrap returns the sentinel for errors.Is checks.
func (e *RequiredInstallError) Unwrap() error { return ErrRequiredDependencyInstall }

// NewInstaller creates an Installer for the given interpreter path.
func NewInstaller(python string, runner proc.Runner, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.Default()
	}
	return &Installer{python: python, runner: runner, logger: logger}
}

// UpgradePip upgrades the package manager itself. A failed upgrade is logged
// and swallowed: an older pip can still install the dependency set, so this
// must not abort the pipeline. Infrastructure failures (interpreter cannot
// be spawned) are returned.
func (i *Installer) UpgradePip(ctx context.Context) error {
	i.logger.Debug("upgrading pip")
	result := i.pip(ctx, "install", "--upgrade", "pip")
	if result.Error != nil {
		return fmt.Errorf("failed to run pip upgrade: %w", result.Error)
	}
	if !result.ExitCode.IsSuccess() {
		i.logger.Warn("pip self-upgrade failed, continuing with current version",
			"exit", result.ExitCode, "stderr", lastLine(result.ErrOutput))
	}
	return nil
}

// InstalledPackages returns the normalized-name → version map of currently
// installed distributions (pip list --format=json). Used to report
// already-satisfied entries without mutating anything.
func (i *Installer) InstalledPackages(ctx context.Context) (map[string]string, error) {
	result := i.pip(ctx, "list", "--format=json")
	if !result.Succeeded() {
		if result.Error != nil {
			return nil, fmt.Errorf("failed to list installed packages: %w", result.Error)
		}
		return nil, fmt.Errorf("pip list exited %s: %s", result.ExitCode, lastLine(result.ErrOutput))
	}

	var entries []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(result.Output), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pip list output: %w", err)
	}

	installed := make(map[string]string, len(entries))
	for _, e := range entries {
		installed[NormalizeName(e.Name)] = e.Version
	}
	return installed, nil
}

// EnsureRequirements installs the requirements file when it exists. A missing
// file is skipped (projects may declare everything in the manifest instead);
// a failing install is fatal because the file is the declared required set.
func (i *Installer) EnsureRequirements(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		i.logger.Debug("no requirements file, skipping", "path", path)
		return nil
	}

	i.logger.Info("installing requirements", "file", path)
	result := i.pip(ctx, "install", "-r", path)
	if result.Error != nil {
		return fmt.Errorf("failed to run pip install -r %s: %w", path, result.Error)
	}
	if !result.ExitCode.IsSuccess() {
		return &RequiredInstallError{Spec: "-r " + path, Output: result.ErrOutput}
	}
	return nil
}

// EnsurePackages ensures every supplementary package is installed.
//
// Entries already present (and matching any version pin) are reported as
// AlreadySatisfied without invoking pip. Optional entries that fail are
// recorded and logged but do not abort; the first required failure aborts
// with a RequiredInstallError. The returned slice always covers every entry
// attempted so far.
func (i *Installer) EnsurePackages(ctx context.Context, pkgs []manifest.Package) ([]EntryResult, error) {
	if len(pkgs) == 0 {
		return nil, nil
	}

	installed, err := i.InstalledPackages(ctx)
	if err != nil {
		// Degraded mode: fall back to pip's own satisfied-requirement
		// short-circuit instead of failing the step.
		i.logger.Warn("could not inspect installed packages", "error", err)
		installed = nil
	}

	results := make([]EntryResult, 0, len(pkgs))
	for _, pkg := range pkgs {
		entry := EntryResult{Spec: pkg.Spec(), Optional: pkg.Optional}

		if version, ok := installed[NormalizeName(pkg.Name)]; ok && (pkg.Version == "" || pkg.Version == version) {
			entry.Outcome = OutcomeAlreadySatisfied
			i.logger.Debug("dependency already satisfied", "package", pkg.Name, "version", version)
			results = append(results, entry)
			continue
		}

		i.logger.Info("installing dependency", "package", entry.Spec, "optional", pkg.Optional)
		result := i.pip(ctx, "install", entry.Spec)

		switch {
		case result.Succeeded():
			entry.Outcome = OutcomeInstalled
		case pkg.Optional:
			entry.Outcome = OutcomeFailed
			entry.Err = fmt.Errorf("optional dependency %s failed to install: %s", entry.Spec, lastLine(result.ErrOutput))
			i.logger.Warn("optional dependency failed to install, continuing",
				"package", entry.Spec, "exit", result.ExitCode)
		default:
			entry.Outcome = OutcomeFailed
			installErr := &RequiredInstallError{Spec: entry.Spec, Output: result.ErrOutput}
			entry.Err = installErr
			results = append(results, entry)
			return results, installErr
		}

		results = append(results, entry)
	}

	return results, nil
}

// pip runs "python -m pip <args>" capturing output, teeing to the
// installer's writers when set.
func (i *Installer) pip(ctx context.Context, args ...string) *proc.Result {
	return i.runner.RunCapture(ctx, proc.Spec{
		Path:   i.python,
		Args:   append([]string{"-m", "pip"}, args...),
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	})
}

// NormalizeName normalizes a distribution name the way pip compares them:
// case-insensitive with runs of "-", "_" and "." treated as equal.
func NormalizeName(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	prevSep := false
	for _, r := range lower {
		if r == '-' || r == '_' || r == '.' {
			if !prevSep {
				b.WriteByte('-')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}
	return b.String()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
