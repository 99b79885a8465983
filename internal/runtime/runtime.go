// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/projrun/projrun/pkg/types"

	"github.com/oklog/ulid/v2"
)

// Runtime mode constants.
const (
	ModeNative  Mode = "native"
	ModeVirtual Mode = "virtual"
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid runtime mode")

type (
	// Mode identifies a runtime.
	Mode string

	// InvalidModeError is returned for unrecognized modes.
	InvalidModeError struct {
		Value Mode
	}

	// ExecutionContext contains everything needed to run one command's script.
	ExecutionContext struct {
		// Context cancels the running line.
		Context context.Context
		// Command is the command name, used for messages only.
		Command string
		// Script holds the lines to run in order.
		Script []string
		// WorkDir is the directory lines run in; usually the project directory.
		WorkDir string
		// Env is added on top of the inherited process environment.
		Env map[string]string
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
		// Stdin is where to read standard input.
		Stdin io.Reader
		// ExecutionID uniquely identifies this execution (a ULID).
		ExecutionID string
	}

	// Result contains the result of a command execution.
	Result struct {
		// ExitCode is the status of the last line run.
		ExitCode types.ExitCode
		// Error is set when a line could not be started or parsed, as
		// opposed to running and exiting non-zero.
		Error error
		// FailedLine is the index of the line that stopped the command, or -1.
		FailedLine int
	}

	// Runtime defines the interface for command execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available returns whether this runtime can run on the current system.
		Available() bool
		// Execute runs every script line of ctx.
		Execute(ctx *ExecutionContext) *Result
	}

	// Registry holds the registered runtimes.
	Registry struct {
		runtimes map[Mode]Runtime
	}
)

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (expected native or virtual)", e.Value)
}

// Unwrap returns ErrInvalidMode.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// Validate returns an InvalidModeError for unknown modes.
func (m Mode) Validate() error {
	switch m {
	case ModeNative, ModeVirtual:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// NewExecutionContext creates an execution context writing to the process stdio.
func NewExecutionContext(ctx context.Context, command string, script []string, workDir string) *ExecutionContext {
	return &ExecutionContext{
		Context:     ctx,
		Command:     command,
		Script:      slices.Clone(script),
		WorkDir:     workDir,
		Env:         make(map[string]string),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		ExecutionID: ulid.Make().String(),
	}
}

func (ctx *ExecutionContext) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[Mode]Runtime)}
}

// NewDefaultRegistry registers the native and virtual runtimes.
func NewDefaultRegistry(native *NativeRuntime, virtual *VirtualRuntime) *Registry {
	r := NewRegistry()
	r.Register(ModeNative, native)
	r.Register(ModeVirtual, virtual)
	return r
}

// Register adds a runtime to the registry.
func (r *Registry) Register(mode Mode, rt Runtime) {
	r.runtimes[mode] = rt
}

// Get returns a runtime by mode.
func (r *Registry) Get(mode Mode) (Runtime, error) {
	rt, ok := r.runtimes[mode]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", mode)
	}
	return rt, nil
}

// Execute runs ctx with the runtime registered for mode.
func (r *Registry) Execute(mode Mode, ctx *ExecutionContext) *Result {
	rt, err := r.Get(mode)
	if err != nil {
		return NewErrorResult(types.ExitCodeFailure, err)
	}

	if !rt.Available() {
		return NewErrorResult(types.ExitCodeFailure, fmt.Errorf("runtime '%s' is not available on this system", rt.Name()))
	}

	return rt.Execute(ctx)
}

// EnvToSlice converts a map of environment variables to KEY=value entries.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}
