// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/projrun/projrun/internal/runner"
	"github.com/projrun/projrun/internal/runtime"

	"github.com/spf13/cobra"
)

type runFlags struct {
	force   bool
	dryRun  bool
	vars    []string
	runtime string
	watch   bool
}

// newRunCommand creates the `projrun run` command.
func newRunCommand(app *App) *cobra.Command {
	var flags runFlags

	runCmd := &cobra.Command{
		Use:   "run <name> [dir]",
		Short: "Run a command or workflow of a project",
		Long: `Run a named command or workflow from the project file in dir
(the current directory by default).

Workflow steps are ordered so that a command producing a file runs before
any command that declares it as a dependency. Steps whose script, deps and
outputs are unchanged since their last successful run are skipped.`,
		Example: `  projrun run all
  projrun run train benchmarks/nel --force
  projrun run all --var training.max_steps=100 --runtime native`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 1 {
				dir = args[1]
			}
			if flags.watch {
				return watchProject(cmd, app, args[0], dir, flags)
			}
			return runProject(cmd, app, args[0], dir, flags)
		},
	}

	runCmd.Flags().BoolVar(&flags.force, "force", false, "run every step even if it is up to date")
	runCmd.Flags().BoolVar(&flags.dryRun, "dry", false, "show what would run without executing")
	runCmd.Flags().StringArrayVar(&flags.vars, "var", nil, "override a project variable (key=value, repeatable)")
	runCmd.Flags().StringVar(&flags.runtime, "runtime", "", "runtime to use: native or virtual (default from config)")
	runCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run when dependencies or the project file change")

	return runCmd
}

// options validates the flags and converts them to runner options.
func (f runFlags) options() (runner.Options, error) {
	overrides, err := parseVarOverrides(f.vars)
	if err != nil {
		return runner.Options{}, err
	}

	mode := runtime.Mode(f.runtime)
	if mode != "" {
		if err := mode.Validate(); err != nil {
			return runner.Options{}, err
		}
	}

	return runner.Options{
		Force:     f.force,
		DryRun:    f.dryRun,
		Overrides: overrides,
		Mode:      mode,
	}, nil
}

func runProject(cmd *cobra.Command, app *App, name, dir string, flags runFlags) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}

	sess, err := app.start(cmd)
	if err != nil {
		return err
	}

	return runOnce(cmd, app, sess, name, dir, flags.dryRun, opts)
}

func runOnce(cmd *cobra.Command, app *App, sess *session, name, dir string, dryRun bool, opts runner.Options) error {
	r := sess.newRunner(app.stdout, app.stderr)
	summary, err := r.RunProject(cmd.Context(), dir, name, opts)
	if summary != nil {
		printSummary(app.stdout, summary, dryRun)
	}
	if err != nil {
		svcErr := classifyError(err, "run "+name, dir)
		renderServiceError(app.stderr, svcErr, app.verbose, app.markdownStyle(sess.cfg), sess.logger)
		cmd.SilenceErrors = true
		return &ExitError{Code: svcErr.Code}
	}
	return nil
}

// parseVarOverrides turns repeated key=value flags into an override map.
func parseVarOverrides(raw []string) (map[string]string, error) {
	overrides := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", kv)
		}
		overrides[strings.TrimSpace(key)] = value
	}
	return overrides, nil
}

func printSummary(w io.Writer, summary *runner.Summary, dryRun bool) {
	heading := "Ran"
	if dryRun {
		heading = "Plan for"
	}
	fmt.Fprintf(w, "\n%s %s\n", TitleStyle.Render(heading), CmdStyle.Render(summary.Name))

	for _, step := range summary.Steps {
		var marker string
		switch step.Status {
		case runner.StepExecuted:
			marker = SuccessStyle.Render("✔ ran    ")
		case runner.StepSkipped:
			marker = SubtitleStyle.Render("- skipped")
		case runner.StepPlanned:
			marker = WarningStyle.Render("→ would run")
		}
		fmt.Fprintf(w, "  %s %s %s\n", marker, CmdStyle.Render(step.Command), SubtitleStyle.Render("("+step.Reason+")"))
	}
}
