// SPDX-License-Identifier: MPL-2.0

// Package interpreter locates a usable Python interpreter.
//
// The locator runs an ordered chain of read-only probes (PATH names, the py
// launcher, conventional install directories) and returns the first hit.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"pyfreeze-cli/internal/config"
	"pyfreeze-cli/internal/proc"
)

// ErrInterpreterNotFound is the sentinel error wrapped by NotFoundError.
var ErrInterpreterNotFound = errors.New("no python interpreter found")

type (
	// Interpreter is a located Python interpreter.
	Interpreter struct {
		// Path is the interpreter executable path (absolute when resolved
		// from PATH or a directory probe).
		Path string
		// Source names the probe that found it, for diagnostics.
		Source string
	}

	// Probe is a single read-only interpreter lookup strategy.
	Probe interface {
		// Name identifies the probe in logs and error messages.
		Name() string
		// Find returns the interpreter path and true on a hit. Probes must
		// not mutate anything; a miss is not an error.
		Find(ctx context.Context) (string, bool)
	}

	// Locator composes probes via first-match-wins.
	Locator struct {
		probes []Probe
		logger *log.Logger
	}

	// NotFoundError reports which probes were tried, so the user can see the
	// full search order that came up empty.
	NotFoundError struct {
		Probed []string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no python interpreter found (probed: %s)", strings.Join(e.Probed, ", "))
}

// Unwrap returns ErrInterpreterNotFound for errors.Is checks.
func (e *NotFoundError) Unwrap() error { return ErrInterpreterNotFound }

// NewLocator builds the production probe chain from the tool config:
// PATH commands first, then the launcher, then conventional directories.
func NewLocator(cfg config.InterpreterConfig, runner proc.Runner, logger *log.Logger) *Locator {
	var probes []Probe
	if len(cfg.Commands) > 0 {
		probes = append(probes, &pathProbe{names: cfg.Commands})
	}
	if cfg.Launcher != "" {
		probes = append(probes, &launcherProbe{launcher: cfg.Launcher, runner: runner})
	}
	if len(cfg.SearchGlobs) > 0 {
		probes = append(probes, &dirProbe{globs: cfg.SearchGlobs})
	}
	return NewLocatorWithProbes(logger, probes...)
}

// NewLocatorWithProbes builds a locator over an explicit probe chain.
func NewLocatorWithProbes(logger *log.Logger, probes ...Probe) *Locator {
	if logger == nil {
		logger = log.Default()
	}
	return &Locator{probes: probes, logger: logger}
}

// Locate returns the first interpreter any probe finds, in declared priority
// order, or a NotFoundError naming every probe that was tried.
func (l *Locator) Locate(ctx context.Context) (*Interpreter, error) {
	probed := make([]string, 0, len(l.probes))

	for _, probe := range l.probes {
		probed = append(probed, probe.Name())

		path, ok := probe.Find(ctx)
		if !ok {
			l.logger.Debug("interpreter probe missed", "probe", probe.Name())
			continue
		}

		l.logger.Debug("interpreter located", "probe", probe.Name(), "path", path)
		return &Interpreter{Path: path, Source: probe.Name()}, nil
	}

	return nil, &NotFoundError{Probed: probed}
}
