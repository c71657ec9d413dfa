// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pyfreeze.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// manifestPath allows specifying a custom build manifest
	manifestPath string
	// pauseOnError keeps the window open after a fatal error
	pauseOnError bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "pyfreeze",
		Short: "Freeze a Python source tree into a standalone executable",
		Long: TitleStyle.Render("pyfreeze") + SubtitleStyle.Render(" - Python packaging pipeline") + `

pyfreeze runs a sequential build pipeline against a declarative manifest
(pyfreeze.toml): locate a Python interpreter, ensure pip dependencies,
drive PyInstaller, then finalize the artifact.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'pyfreeze init' in your project directory
  2. Adjust pyfreeze.toml (entry script, bundled data, dependencies)
  3. Run 'pyfreeze build'

` + SubtitleStyle.Render("Examples:") + `
  pyfreeze build            Run the whole pipeline
  pyfreeze locate           Print the interpreter the pipeline would use
  pyfreeze deps             Install dependencies only
  pyfreeze package          Package only (dependencies assumed present)
  pyfreeze clean            Remove build intermediates and dist output`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pyfreeze/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "build manifest (default is ./pyfreeze.toml)")
	rootCmd.PersistentFlags().BoolVar(&pauseOnError, "pause-on-error", false, "wait for Enter before exiting after a fatal error")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
