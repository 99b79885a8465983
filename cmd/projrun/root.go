// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for projrun.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/projrun/projrun/internal/issue"

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
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projrun",
		Short: "A project pipeline runner",
		Long: TitleStyle.Render("projrun") + SubtitleStyle.Render(" - A project pipeline runner") + `

projrun runs the commands and workflows declared in a project file
(project.cue, project.yml or project.yaml). Steps whose dependencies and
outputs are unchanged since the last run are skipped; state is kept in
project.lock next to the project file.

` + SubtitleStyle.Render("Examples:") + `
  projrun run all                  Run the 'all' workflow of ./
  projrun run train ./my-project   Run one command of another project
  projrun run all --var gpu_id=0   Override a project variable
  projrun document                 Show the project's commands
  projrun bench nel                Run the entity-linking benchmark`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/projrun/config.cue)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newDocumentCommand(app))
	rootCmd.AddCommand(newBenchCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
