// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/interpreter"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the Python interpreter the pipeline would use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := NewApp(Dependencies{})

		cfg, err := app.loadToolConfig()
		if err != nil {
			return app.fail(cfg, err)
		}

		py, err := interpreter.NewLocator(cfg.Interpreter, app.Runner, app.Logger).Locate(cmd.Context())
		if err != nil {
			return app.fail(cfg, err)
		}

		fmt.Fprintln(app.Stdout, CmdStyle.Render(py.Path))
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("found via: "+py.Source))
		return nil
	},
}
