// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/artifact"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build intermediates and dist output",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := NewApp(Dependencies{})

		cfg, err := app.loadToolConfig()
		if err != nil {
			return app.fail(cfg, err)
		}

		m, err := app.loadManifest()
		if err != nil {
			return app.fail(cfg, err)
		}

		targets := []string{
			resolvePath(m.Dir, cfg.Build.DistDir),
			resolvePath(m.Dir, cfg.Build.WorkDir),
			filepath.Join(m.Dir, m.Name+".spec"),
		}
		if err := artifact.CleanPaths(targets...); err != nil {
			return app.fail(cfg, err)
		}

		for _, t := range targets {
			fmt.Fprintln(app.Stdout, SuccessStyle.Render("  removed ")+t)
		}
		return nil
	},
}
