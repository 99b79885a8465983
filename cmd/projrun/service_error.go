// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/projrun/projrun/internal/dag"
	"github.com/projrun/projrun/internal/issue"
	"github.com/projrun/projrun/internal/project"
	"github.com/projrun/projrun/internal/runner"
	"github.com/projrun/projrun/pkg/types"

	"github.com/charmbracelet/log"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// Code is the process exit code for this error.
	Code types.ExitCode
}

// configLoadError marks a failure to load the projrun configuration.
type configLoadError struct {
	err error
}

func (e *configLoadError) Error() string { return e.err.Error() }

func (e *configLoadError) Unwrap() error { return e.err }

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, code types.ExitCode) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID, Code: code}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps project and runner failures to catalog entries and
// actionable suggestions.
func classifyError(err error, operation, resource string) *ServiceError {
	ctx := issue.NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)

	var (
		stepErr *runner.StepFailedError
		cfgErr  *configLoadError
		id      issue.Id
		code    = types.ExitCodeFailure
	)
	switch {
	case errors.As(err, &cfgErr):
		id = issue.ConfigLoadFailedID
		ctx.WithSuggestion("Run 'projrun config path' to see which config file is read")
	case errors.Is(err, project.ErrProjectNotFound):
		id = issue.ProjectNotFoundID
		ctx.WithSuggestion("Pass the project directory as the second argument")
	case errors.Is(err, project.ErrInvalidProject):
		id = issue.ProjectParseErrorID
		ctx.WithSuggestion("Fix the problems listed above in the project file")
	case errors.Is(err, runner.ErrCommandNotFound):
		id = issue.CommandNotFoundID
		ctx.WithSuggestion("Run 'projrun document' to list commands and workflows")
	case errors.Is(err, runner.ErrMissingDeps):
		id = issue.MissingDependenciesID
		ctx.WithSuggestion("Run the command that produces the missing files first, or run the whole workflow")
	case errors.Is(err, runner.ErrMissingOutputs):
		id = issue.MissingOutputsID
		ctx.WithSuggestion("Check the command's script writes every declared output")
	case errors.As(err, &stepErr):
		id = issue.StepFailedID
		code = stepErr.ExitCode
		ctx.WithSuggestion("Re-run with --verbose to see each program the script starts")
	case errors.Is(err, dag.ErrCycle):
		id = issue.DependencyCycleID
		ctx.WithSuggestion("Break the cycle between the outputs and deps of the listed commands")
	}

	return newServiceError(ctx.BuildError(), id, code)
}

// renderServiceError prints the formatted error and the catalog help.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool, style string, logger *log.Logger) {
	if svcErr == nil {
		return
	}

	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(svcErr.Err, verbose))

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}
