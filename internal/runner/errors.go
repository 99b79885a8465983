// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/projrun/projrun/internal/project"
	"github.com/projrun/projrun/pkg/types"
)

var (
	// ErrCommandNotFound is returned when the requested name is neither a
	// command nor a workflow.
	ErrCommandNotFound = project.ErrCommandNotFound

	// ErrMissingDeps is the sentinel error wrapped by MissingDepsError.
	ErrMissingDeps = errors.New("missing dependencies")

	// ErrMissingOutputs is the sentinel error wrapped by MissingOutputsError.
	ErrMissingOutputs = errors.New("missing outputs")

	// ErrStepFailed is the sentinel error wrapped by StepFailedError.
	ErrStepFailed = errors.New("command failed")
)

type (
	// MissingDepsError is returned when a command's declared deps do not
	// exist before it runs.
	MissingDepsError struct {
		Command string
		Paths   []string
	}

	// MissingOutputsError is returned when a command finished successfully
	// but did not create every declared output.
	MissingOutputsError struct {
		Command string
		Paths   []string
	}

	// StepFailedError is returned when a command's script exits non-zero.
	StepFailedError struct {
		Command  string
		ExitCode types.ExitCode
		// Line is the 1-based script line that failed, or 0 when unknown.
		Line int
		Err  error
	}
)

// Error implements the error interface.
func (e *MissingDepsError) Error() string {
	return fmt.Sprintf("command %q is missing dependencies: %s", e.Command, strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrMissingDeps.
func (e *MissingDepsError) Unwrap() error { return ErrMissingDeps }

// Error implements the error interface.
func (e *MissingOutputsError) Error() string {
	return fmt.Sprintf("command %q did not create outputs: %s", e.Command, strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrMissingOutputs.
func (e *MissingOutputsError) Unwrap() error { return ErrMissingOutputs }

// Error implements the error interface.
func (e *StepFailedError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (script line %d)", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrStepFailed and the underlying error, if any.
func (e *StepFailedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrStepFailed, e.Err}
	}
	return []error{ErrStepFailed}
}
