// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/interpreter"
	"pyfreeze-cli/internal/pip"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Install manifest dependencies without packaging",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := NewApp(Dependencies{})
		ctx := cmd.Context()

		cfg, err := app.loadToolConfig()
		if err != nil {
			return app.fail(cfg, err)
		}

		m, err := app.loadManifest()
		if err != nil {
			return app.fail(cfg, err)
		}

		py, err := interpreter.NewLocator(cfg.Interpreter, app.Runner, app.Logger).Locate(ctx)
		if err != nil {
			return app.fail(cfg, err)
		}

		installer := pip.NewInstaller(py.Path, app.Runner, app.Logger)
		if verbose {
			installer.Stdout = app.Stdout
			installer.Stderr = app.Stderr
		}

		if err := installer.UpgradePip(ctx); err != nil {
			return app.fail(cfg, err)
		}

		reqPath := m.Requirements
		if reqPath == "" {
			reqPath = "requirements.txt"
		}
		if err := installer.EnsureRequirements(ctx, resolvePath(m.Dir, reqPath)); err != nil {
			return app.fail(cfg, err)
		}

		results, err := installer.EnsurePackages(ctx, withPackagingTool(m.Packages))
		printDepResults(app, results)
		if err != nil {
			return app.fail(cfg, err)
		}
		return nil
	},
}

func printDepResults(app *App, results []pip.EntryResult) {
	for _, r := range results {
		switch r.Outcome {
		case pip.OutcomeFailed:
			style := ErrorStyle
			if r.Optional {
				style = WarningStyle
			}
			fmt.Fprintln(app.Stdout, style.Render("  ✗ ")+r.Spec+" ("+r.Outcome.String()+")")
		default:
			fmt.Fprintln(app.Stdout, SuccessStyle.Render("  ✓ ")+r.Spec+" ("+r.Outcome.String()+")")
		}
	}
}
