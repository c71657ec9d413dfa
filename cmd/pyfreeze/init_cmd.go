// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyfreeze-cli/internal/manifest"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a starter pyfreeze.toml in the current directory",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := NewApp(Dependencies{})

		path := manifestPath
		if path == "" {
			path = manifest.DefaultFileName
		}

		if _, err := os.Stat(path); err == nil {
			return app.fail(nil, fmt.Errorf("%s already exists, refusing to overwrite", path))
		}

		name := initName
		if name == "" {
			if abs, err := filepath.Abs(path); err == nil {
				name = filepath.Base(filepath.Dir(abs))
			}
		}

		if err := os.WriteFile(path, []byte(manifest.Starter(name)), 0o644); err != nil {
			return app.fail(nil, err)
		}

		fmt.Fprintln(app.Stdout, SuccessStyle.Render("created ")+CmdStyle.Render(path))
		fmt.Fprintln(app.Stdout, SubtitleStyle.Render("edit the entry script and data mappings, then run 'pyfreeze build'"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "application name (default is the directory name)")
}
