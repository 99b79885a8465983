// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"context"
	"io"
	"path/filepath"

	"github.com/projrun/projrun/pkg/platform"
	"github.com/projrun/projrun/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// Skipped means the benchmark did not run on this platform.
	Skipped Outcome = "skipped"
	// Passed means the benchmark ran and the verdict accepted it.
	Passed Outcome = "passed"
	// Failed means the verdict rejected the run.
	Failed Outcome = "failed"

	// WindowsSkipReason is reported when a benchmark is skipped on Windows.
	WindowsSkipReason = "Skipping on Windows (for now) due to platform-specific scripts."
)

// NELProjectDir is the entity-linking benchmark project, relative to the
// repository root.
var NELProjectDir = filepath.Join("benchmarks", "nel")

type (
	// Outcome is the tagged result of an invocation.
	Outcome string

	// ProjectRunner runs a project's full workflow in a directory.
	ProjectRunner interface {
		Run(ctx context.Context, projectDir string) error
	}

	// Report is the result of Invoke.
	Report struct {
		Outcome  Outcome
		Reason   string
		ExitCode types.ExitCode
		// Ran is true when the ProjectRunner was called.
		Ran bool
		// RunErr is the error the ProjectRunner returned, if any.
		RunErr error
	}

	// Invoker runs a benchmark project.
	Invoker struct {
		Platform   platform.Platform
		Runner     ProjectRunner
		ProjectDir string
		// Verdict decides the outcome after a run. Defaults to ForcedFailure.
		Verdict Verdict
		// Logger may be nil.
		Logger *log.Logger
	}
)

// NewNELInvoker returns an invoker for the entity-linking benchmark project.
func NewNELInvoker(p platform.Platform, runner ProjectRunner) *Invoker {
	return &Invoker{
		Platform:   p,
		Runner:     runner,
		ProjectDir: NELProjectDir,
	}
}

// Invoke runs the benchmark unless the platform is Windows. It holds no state
// between calls.
func (inv *Invoker) Invoke(ctx context.Context) Report {
	logger := inv.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("project", inv.ProjectDir, "platform", inv.Platform)

	if inv.Platform.IsWindows() {
		logger.Info("benchmark skipped", "reason", WindowsSkipReason)
		return Report{Outcome: Skipped, Reason: WindowsSkipReason, ExitCode: types.ExitCodeSuccess}
	}

	logger.Info("running benchmark")
	runErr := inv.Runner.Run(ctx, inv.ProjectDir)
	if runErr != nil {
		logger.Error("benchmark project failed", "err", runErr)
	}

	verdict := inv.Verdict
	if verdict == nil {
		verdict = ForcedFailure
	}
	outcome, code := verdict(runErr)

	report := Report{Outcome: outcome, ExitCode: code, Ran: true, RunErr: runErr}
	switch {
	case outcome == Passed:
		report.Reason = "benchmark completed"
	case runErr != nil:
		report.Reason = runErr.Error()
	default:
		report.Reason = "benchmark completed; reported as a failure"
	}
	logger.Info("benchmark finished", "outcome", outcome, "exit_code", code)
	return report
}
