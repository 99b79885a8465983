// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/projrun/projrun/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `projrun config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage projrun configuration",
		Long: `Manage projrun configuration.

Configuration is stored in:
  - Linux: ~/.config/projrun/config.cue
  - macOS: ~/Library/Application Support/projrun/config.cue
  - Windows: %APPDATA%\projrun\config.cue

Every key can be overridden with a PROJRUN_ environment variable, for
example PROJRUN_DEFAULT_RUNTIME=native.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.configFailure(cmd, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.Config.Source(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.configFailure(cmd, err)
			}
			if path == "" {
				dir, dirErr := config.ConfigDir()
				if dirErr != nil {
					return dirErr
				}
				fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("(not created)"), dir)
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}
