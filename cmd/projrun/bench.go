// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/projrun/projrun/internal/benchmark"
	"github.com/projrun/projrun/pkg/platform"

	"github.com/spf13/cobra"
)

// newBenchCommand creates the `projrun bench` command tree.
func newBenchCommand(app *App) *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run benchmark projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		platformName string
		verdictName  string
	)

	nelCmd := &cobra.Command{
		Use:   "nel",
		Short: "Run the entity-linking (NEL) benchmark",
		Long: `Run the entity-linking benchmark project (benchmarks/nel by default,
or bench.nel_project from the config).

The benchmark is skipped on Windows. With the default "forced" verdict a
completed run is still reported as a failure with exit code 1 so that its
output is reviewed; use --verdict result to pass when the run succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := platform.Current()
			if platformName != "" {
				var err error
				if p, err = platform.Parse(platformName); err != nil {
					return err
				}
			}
			verdict, err := benchmark.ParseVerdict(verdictName)
			if err != nil {
				return err
			}

			sess, err := app.start(cmd)
			if err != nil {
				return err
			}

			var projectRunner benchmark.ProjectRunner = sess.newRunner(app.stdout, app.stderr)
			if app.BenchRunner != nil {
				projectRunner = app.BenchRunner
			}

			inv := benchmark.NewNELInvoker(p, projectRunner)
			inv.Verdict = verdict
			inv.Logger = sess.logger
			if sess.cfg.Bench.NELProject != "" {
				inv.ProjectDir = sess.cfg.Bench.NELProject
			}

			report := inv.Invoke(cmd.Context())
			printReport(cmd, app, report)

			if report.Outcome == benchmark.Failed {
				cmd.SilenceErrors = true
				return &ExitError{Code: report.ExitCode, Err: report.RunErr}
			}
			return nil
		},
	}

	nelCmd.Flags().StringVar(&platformName, "platform", "", "platform to gate on (linux, darwin, windows, win32, macos); default is the host")
	nelCmd.Flags().StringVar(&verdictName, "verdict", "forced", "how to judge a run: forced (always fail) or result")

	benchCmd.AddCommand(nelCmd)
	return benchCmd
}

func printReport(cmd *cobra.Command, app *App, report benchmark.Report) {
	var status string
	switch report.Outcome {
	case benchmark.Passed:
		status = SuccessStyle.Render("PASSED")
	case benchmark.Skipped:
		status = WarningStyle.Render("SKIPPED")
	default:
		status = ErrorStyle.Render("FAILED")
	}

	fmt.Fprintf(app.stdout, "%s %s: %s\n", TitleStyle.Render(cmd.Name()), status, report.Reason)
	if report.Ran {
		fmt.Fprintf(app.stdout, "%s %d\n", SubtitleStyle.Render("exit status"), report.ExitCode)
	}
}
