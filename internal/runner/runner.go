// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/projrun/projrun/internal/lockfile"
	"github.com/projrun/projrun/internal/project"
	"github.com/projrun/projrun/internal/runtime"

	"github.com/charmbracelet/log"
)

// DefaultWorkflow is the workflow Run executes.
const DefaultWorkflow = "all"

type (
	// Runner runs project commands.
	Runner struct {
		// Registry provides the runtimes. Must not be nil.
		Registry *runtime.Registry
		// Logger receives progress records. Defaults to a discarding logger.
		Logger *log.Logger
		// DefaultMode is used when Options.Mode is empty. Defaults to virtual.
		DefaultMode runtime.Mode
		// LockFile is the lock file name inside the project directory.
		LockFile string
		// Version is recorded in the lock file for every completed command.
		Version string
		// Stdout and Stderr receive script output. Default to the process stdio.
		Stdout io.Writer
		Stderr io.Writer
		// LookupEnv resolves ${env.NAME} references. Defaults to os.LookupEnv.
		LookupEnv project.LookupEnvFunc
		// Now stamps lock entries. Defaults to time.Now.
		Now func() time.Time
	}

	// Options controls a single RunProject call.
	Options struct {
		// Force runs every step even when the lock file says it is up to date.
		Force bool
		// DryRun reports what would run without executing or recording anything.
		DryRun bool
		// Overrides sets variables, e.g. {"vars.gpu": "0"}.
		Overrides map[string]string
		// Mode selects the runtime; empty means Runner.DefaultMode.
		Mode runtime.Mode
	}

	// StepStatus is what happened to one command in a run.
	StepStatus string

	// Step records the outcome of one command.
	Step struct {
		Command string
		Status  StepStatus
		// Reason explains why the step ran, or why it was skipped.
		Reason string
		// ExecutionID identifies the runtime execution; empty unless executed.
		ExecutionID string
	}

	// Summary describes a finished run.
	Summary struct {
		Project    string
		Name       string
		IsWorkflow bool
		Steps      []Step
	}
)

// Step statuses.
const (
	StepExecuted StepStatus = "executed"
	StepSkipped  StepStatus = "skipped"
	StepPlanned  StepStatus = "planned"
)

// New creates a Runner with the default native and virtual runtimes.
func New(logger *log.Logger) *Runner {
	return &Runner{
		Registry: runtime.NewDefaultRegistry(runtime.NewNativeRuntime(), runtime.NewVirtualRuntime(logger)),
		Logger:   logger,
	}
}

// Run executes the project's "all" workflow in dir.
func (r *Runner) Run(ctx context.Context, dir string) error {
	_, err := r.RunProject(ctx, dir, DefaultWorkflow, Options{})
	return err
}

// RunProject executes the command or workflow name of the project in dir.
// The returned summary lists the steps handled before any error.
func (r *Runner) RunProject(ctx context.Context, dir, name string, opts Options) (*Summary, error) {
	logger := r.logger()

	mode := opts.Mode
	if mode == "" {
		mode = r.defaultMode()
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	p, err := project.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := p.ApplyOverrides(opts.Overrides); err != nil {
		return nil, err
	}
	p, err = p.Expand(r.lookupEnv())
	if err != nil {
		return nil, err
	}

	cmds, isWorkflow, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}
	if isWorkflow {
		if cmds, err = project.Plan(cmds); err != nil {
			return nil, err
		}
		logger.Info("running workflow", "workflow", name, "steps", len(cmds))
	}

	summary := &Summary{Project: p.Dir, Name: name, IsWorkflow: isWorkflow}

	lock, err := lockfile.Load(filepath.Join(p.Dir, r.lockFileName()))
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if err := p.EnsureDirectories(); err != nil {
			return nil, err
		}
	}

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		step, err := r.runCommand(ctx, p, lock, cmd, mode, opts)
		if step.Command != "" {
			summary.Steps = append(summary.Steps, step)
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (r *Runner) runCommand(ctx context.Context, p *project.Project, lock *lockfile.Lock, cmd project.Command, mode runtime.Mode, opts Options) (Step, error) {
	logger := r.logger().With("cmd", cmd.Name)

	if missing := missingPaths(p, cmd.Deps); len(missing) > 0 && !opts.DryRun {
		return Step{}, &MissingDepsError{Command: cmd.Name, Paths: missing}
	}

	rerun, reason, err := lock.NeedsRerun(p.Dir, cmd)
	if err != nil {
		return Step{}, fmt.Errorf("check lock for %q: %w", cmd.Name, err)
	}
	if opts.Force {
		rerun, reason = true, "forced"
	}
	if !rerun {
		logger.Info("skipping, nothing changed")
		return Step{Command: cmd.Name, Status: StepSkipped, Reason: "up to date"}, nil
	}

	if opts.DryRun {
		logger.Info("would run", "reason", reason)
		return Step{Command: cmd.Name, Status: StepPlanned, Reason: reason}, nil
	}

	logger.Info("running", "reason", reason, "runtime", mode)

	execCtx := runtime.NewExecutionContext(ctx, cmd.Name, cmd.Script, p.Dir)
	for k, v := range p.Env {
		execCtx.Env[k] = v
	}
	if r.Stdout != nil {
		execCtx.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		execCtx.Stderr = r.Stderr
	}

	step := Step{Command: cmd.Name, Status: StepExecuted, Reason: reason, ExecutionID: execCtx.ExecutionID}

	result := r.Registry.Execute(mode, execCtx)
	if !result.Success() {
		code := result.ExitCode
		if code.IsSuccess() {
			code = 1
		}
		return step, &StepFailedError{Command: cmd.Name, ExitCode: code, Line: result.FailedLine + 1, Err: result.Error}
	}

	missing := missingPaths(p, append(append([]string(nil), cmd.Outputs...), cmd.OutputsNoCache...))
	if len(missing) > 0 {
		return step, &MissingOutputsError{Command: cmd.Name, Paths: missing}
	}

	meta := lockfile.RecordMeta{
		RunnerVersion: r.Version,
		ExecutionID:   execCtx.ExecutionID,
		CompletedAt:   r.now().UTC(),
	}
	if err := lock.Record(p.Dir, cmd, meta); err != nil {
		return step, fmt.Errorf("record %q in lock file: %w", cmd.Name, err)
	}
	if err := lock.Save(); err != nil {
		return step, err
	}

	logger.Debug("done", "execution_id", execCtx.ExecutionID)
	return step, nil
}

func missingPaths(p *project.Project, paths []string) []string {
	var missing []string
	for _, rel := range paths {
		if _, err := os.Stat(p.Path(rel)); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, rel)
		}
	}
	return missing
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

func (r *Runner) defaultMode() runtime.Mode {
	if r.DefaultMode == "" {
		return runtime.ModeVirtual
	}
	return r.DefaultMode
}

func (r *Runner) lockFileName() string {
	if r.LockFile == "" {
		return lockfile.DefaultFileName
	}
	return r.LockFile
}

func (r *Runner) lookupEnv() project.LookupEnvFunc {
	if r.LookupEnv == nil {
		return os.LookupEnv
	}
	return r.LookupEnv
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
