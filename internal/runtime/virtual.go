// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/projrun/projrun/pkg/types"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes script lines with the mvdan/sh interpreter, so
// POSIX shell syntax works the same on every platform. External programs
// are still looked up on PATH.
type VirtualRuntime struct {
	// Logger receives a debug record for every external program started.
	// May be nil.
	Logger *log.Logger
}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime(logger *log.Logger) *VirtualRuntime {
	return &VirtualRuntime{Logger: logger}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(ModeVirtual)
}

// Available returns true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Execute runs each line in a fresh interpreter.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	env := expand.ListEnviron(append(os.Environ(), EnvToSlice(ctx.Env)...)...)

	for i, line := range ctx.Script {
		prog, err := parseLine(line, i)
		if err != nil {
			return NewLineResult(i, types.ExitCodeFailure, err)
		}

		runner, err := interp.New(
			interp.Dir(ctx.WorkDir),
			interp.Env(env),
			interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
			interp.ExecHandlers(r.execHandler),
		)
		if err != nil {
			return NewLineResult(i, types.ExitCodeFailure, fmt.Errorf("failed to create interpreter: %w", err))
		}

		if err := runner.Run(ctx.context(), prog); err != nil {
			var exitStatus interp.ExitStatus
			if errors.As(err, &exitStatus) {
				return NewLineResult(i, types.ExitCode(exitStatus), nil)
			}
			return NewLineResult(i, types.ExitCodeFailure, fmt.Errorf("line %d failed: %w", i+1, err))
		}
	}

	return NewSuccessResult()
}

func (r *VirtualRuntime) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if r.Logger != nil && len(args) > 0 {
			r.Logger.Debug("exec", "program", args[0], "args", args[1:])
		}
		return next(ctx, args)
	}
}

func parseLine(line string, index int) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(line), fmt.Sprintf("line %d", index+1))
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}
