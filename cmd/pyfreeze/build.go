// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/artifact"
	"pyfreeze-cli/internal/config"
	"pyfreeze-cli/internal/interpreter"
	"pyfreeze-cli/internal/issue"
	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/packager"
	"pyfreeze-cli/internal/pip"
	"pyfreeze-cli/internal/pipeline"
	"pyfreeze-cli/internal/platform"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the whole pipeline: locate, install, package, finalize",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return executeBuild(cmd.Context(), NewApp(Dependencies{}))
	},
}

// buildState carries results across pipeline steps. The pipeline itself is
// stateless; each step closure writes what later steps and the final summary
// need.
type buildState struct {
	python  *interpreter.Interpreter
	summary *artifact.Summary
}

func executeBuild(ctx context.Context, app *App) error {
	cfg, err := app.loadToolConfig()
	if err != nil {
		return app.fail(cfg, err)
	}

	m, err := app.loadManifest()
	if err != nil {
		return app.fail(cfg, err)
	}

	state := &buildState{}
	p := pipeline.New(app.Logger, buildSteps(app, cfg, m, state)...)

	if err := p.Run(ctx); err != nil {
		return app.fail(cfg, err)
	}

	printBuildSummary(app, state.summary)
	return nil
}

// buildSteps assembles the four pipeline steps over shared state.
func buildSteps(app *App, cfg *config.Config, m *manifest.Manifest, state *buildState) []pipeline.Step {
	distDir := resolvePath(m.Dir, cfg.Build.DistDir)
	workDir := resolvePath(m.Dir, cfg.Build.WorkDir)

	return []pipeline.Step{
		{
			Name: "locate interpreter",
			Run: func(ctx context.Context) error {
				locator := interpreter.NewLocator(cfg.Interpreter, app.Runner, app.Logger)
				py, err := locator.Locate(ctx)
				if err != nil {
					return err
				}
				app.Logger.Info("interpreter located", "path", py.Path, "via", py.Source)
				state.python = py
				return nil
			},
		},
		{
			Name: "install dependencies",
			Run: func(ctx context.Context) error {
				installer := pip.NewInstaller(state.python.Path, app.Runner, app.Logger)
				if verbose {
					installer.Stdout = app.Stdout
					installer.Stderr = app.Stderr
				}

				if err := installer.UpgradePip(ctx); err != nil {
					return err
				}

				reqPath := m.Requirements
				if reqPath == "" {
					reqPath = "requirements.txt"
				}
				if err := installer.EnsureRequirements(ctx, resolvePath(m.Dir, reqPath)); err != nil {
					return err
				}

				_, err := installer.EnsurePackages(ctx, withPackagingTool(m.Packages))
				return err
			},
		},
		{
			Name: "package",
			Run: func(ctx context.Context) error {
				env := hookEnv(m, distDir)
				if m.PreBuild != "" {
					if err := pipeline.RunHook(ctx, "pre_build", m.PreBuild, m.Dir, env, app.Stdout, app.Stderr); err != nil {
						return err
					}
				}

				pk := packager.New(state.python.Path, app.Runner, app.Logger)
				pk.Stdout = app.Stdout
				pk.Stderr = app.Stderr
				if err := pk.Package(ctx, m, distDir, workDir); err != nil {
					return err
				}

				if m.PostBuild != "" {
					return pipeline.RunHook(ctx, "post_build", m.PostBuild, m.Dir, env, app.Stdout, app.Stderr)
				}
				return nil
			},
		},
		{
			Name: "finalize artifact",
			Run: func(_ context.Context) error {
				summary, err := artifact.NewFinalizer(app.Logger).Finalize(m, artifact.Options{
					DistDir:            distDir,
					WorkDir:            workDir,
					CleanIntermediates: cfg.Build.CleanIntermediates,
					CopyDir:            copyDestination(app, cfg),
				})
				if err != nil {
					return err
				}
				state.summary = summary
				return nil
			},
		},
	}
}

// withPackagingTool ensures PyInstaller itself is part of the required set;
// the package step cannot run without it.
func withPackagingTool(pkgs []manifest.Package) []manifest.Package {
	for _, p := range pkgs {
		if pip.NormalizeName(p.Name) == "pyinstaller" {
			return pkgs
		}
	}
	return append([]manifest.Package{{Name: "pyinstaller"}}, pkgs...)
}

// copyDestination resolves the user-facing copy target, or "" to skip the copy.
func copyDestination(app *App, cfg *config.Config) string {
	if !cfg.Artifact.CopyToDesktop {
		return ""
	}
	if cfg.Artifact.DestinationDir != "" {
		return cfg.Artifact.DestinationDir
	}

	desktop, err := platform.DesktopDir()
	if err != nil {
		app.Logger.Warn("cannot resolve desktop directory, skipping copy", "error", err)
		return ""
	}
	return desktop
}

// hookEnv exposes build facts to pre/post build hook scripts.
func hookEnv(m *manifest.Manifest, distDir string) []string {
	return []string{
		"PYFREEZE_NAME=" + m.Name,
		"PYFREEZE_ENTRY=" + m.Entry,
		"PYFREEZE_DIST=" + distDir,
	}
}

// fail renders the error, honors pause-on-error, and converts the failure
// into an ExitError that propagates the failing tool's exit code.
func (a *App) fail(cfg *config.Config, err error) error {
	renderError(a, err)
	a.pauseIfRequested(cfg)
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// exitCodeFor propagates the underlying tool's exit code when one exists.
func exitCodeFor(err error) int {
	var toolErr *packager.ToolError
	if errors.As(err, &toolErr) && int(toolErr.ExitCode) > 0 {
		return int(toolErr.ExitCode)
	}
	var hookErr *pipeline.HookError
	if errors.As(err, &hookErr) && hookErr.ExitCode > 0 {
		return hookErr.ExitCode
	}
	return 1
}

func printBuildSummary(app *App, summary *artifact.Summary) {
	fmt.Fprintln(app.Stdout, SuccessStyle.Render("build succeeded"))
	fmt.Fprintln(app.Stdout, "  artifact: "+CmdStyle.Render(summary.ArtifactPath))
	switch {
	case summary.CopiedTo != "":
		fmt.Fprintln(app.Stdout, "  copied to: "+CmdStyle.Render(summary.CopiedTo))
	case summary.CopyErr != nil:
		fmt.Fprintln(app.Stdout, WarningStyle.Render("  copy skipped: ")+summary.CopyErr.Error())
		renderIssue(app, issue.ArtifactCopyFailedId)
	}
}
