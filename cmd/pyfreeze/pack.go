// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/artifact"
	"pyfreeze-cli/internal/interpreter"
	"pyfreeze-cli/internal/packager"
	"pyfreeze-cli/internal/pipeline"
)

// packageCmd runs packaging and finalization only. Dependencies are assumed
// to be present; use 'pyfreeze deps' or 'pyfreeze build' otherwise.
var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Package and finalize without touching dependencies",
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

		distDir := resolvePath(m.Dir, cfg.Build.DistDir)
		workDir := resolvePath(m.Dir, cfg.Build.WorkDir)

		env := hookEnv(m, distDir)
		if m.PreBuild != "" {
			if err := pipeline.RunHook(ctx, "pre_build", m.PreBuild, m.Dir, env, app.Stdout, app.Stderr); err != nil {
				return app.fail(cfg, err)
			}
		}

		pk := packager.New(py.Path, app.Runner, app.Logger)
		pk.Stdout = app.Stdout
		pk.Stderr = app.Stderr
		if err := pk.Package(ctx, m, distDir, workDir); err != nil {
			return app.fail(cfg, err)
		}

		if m.PostBuild != "" {
			if err := pipeline.RunHook(ctx, "post_build", m.PostBuild, m.Dir, env, app.Stdout, app.Stderr); err != nil {
				return app.fail(cfg, err)
			}
		}

		summary, err := artifact.NewFinalizer(app.Logger).Finalize(m, artifact.Options{
			DistDir:            distDir,
			WorkDir:            workDir,
			CleanIntermediates: cfg.Build.CleanIntermediates,
			CopyDir:            copyDestination(app, cfg),
		})
		if err != nil {
			return app.fail(cfg, err)
		}

		printBuildSummary(app, summary)
		return nil
	},
}
