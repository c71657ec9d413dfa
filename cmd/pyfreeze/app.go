// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pyfreeze-cli/internal/config"
	"pyfreeze-cli/internal/issue"
	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/proc"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer — command handlers receive an App and delegate
	// through its fields, so tests can substitute fakes.
	App struct {
		Config config.Provider
		Runner proc.Runner
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
		// Stdin is read by the pause-on-error prompt.
		Stdin io.Reader
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Runner proc.Runner
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = proc.NewRunner()
	}
	if deps.Logger == nil {
		logger := log.NewWithOptions(deps.Stderr, log.Options{ReportTimestamp: false})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
		deps.Logger = logger
	}

	return &App{
		Config: deps.Config,
		Runner: deps.Runner,
		Logger: deps.Logger,
		Stdout: deps.Stdout,
		Stderr: deps.Stderr,
		Stdin:  deps.Stdin,
	}
}

// loadToolConfig loads configuration honoring the --config flag. With an
// explicit path, failure is fatal (a user-specified file must work); on the
// default path, failure falls back to defaults with a warning so the
// pipeline stays operational.
func (a *App) loadToolConfig() (*config.Config, error) {
	cfg, err := a.Config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err == nil {
		return cfg, nil
	}

	if cfgFile != "" {
		return nil, issue.WrapWithContext(err, "load config", cfgFile)
	}

	a.Logger.Warn("failed to load config, using defaults", "error", err)
	renderIssue(a, issue.ConfigLoadFailedId)
	return config.DefaultConfig(), nil
}

// loadManifest loads the build manifest honoring the --manifest flag.
func (a *App) loadManifest() (*manifest.Manifest, error) {
	path := manifestPath
	if path == "" {
		path = manifest.DefaultFileName
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// pauseIfRequested blocks until Enter after a fatal error so the message
// stays readable when the tool was launched by double-click.
func (a *App) pauseIfRequested(cfg *config.Config) {
	if !pauseOnError && (cfg == nil || !cfg.UI.PauseOnError) {
		return
	}
	fmt.Fprint(a.Stderr, "\nPress Enter to exit...")
	buf := make([]byte, 1)
	for {
		n, err := a.Stdin.Read(buf)
		if err != nil || (n > 0 && buf[0] == '\n') {
			return
		}
	}
}

// resolvePath makes a config-relative path absolute against the manifest dir,
// so "dist" and "build" land next to the project regardless of cwd.
func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
