// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load project"},
			expected: "failed to load project",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load project",
				Resource:  "./project.cue",
			},
			expected: "failed to load project: ./project.cue",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "run command",
				Resource:  "train",
				Cause:     errors.New("exit status 2"),
			},
			expected: "failed to run command: train: exit status 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := fmt.Errorf("outer: %w", &ActionableError{Operation: "test", Cause: cause})

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(wrapped, &ae) || ae.Operation != "test" {
		t.Errorf("errors.As did not find the ActionableError: %v", wrapped)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	err := &ActionableError{
		Operation:   "load project",
		Resource:    "./project.cue",
		Suggestions: []string{"Pass the project directory", "Check file permissions"},
		Cause:       fmt.Errorf("open: %w", inner),
	}

	plain := err.Format(false)
	for _, want := range []string{"failed to load project", "• Pass the project directory", "• Check file permissions"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. open: no such file", "2. no such file"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("requires operation", func(t *testing.T) {
		t.Parallel()

		if got := NewErrorContext().WithResource("x").Build(); got != nil {
			t.Errorf("Build() = %v, want nil without operation", got)
		}
		if err := NewErrorContext().BuildError(); err != nil {
			t.Errorf("BuildError() = %v, want nil without operation", err)
		}
	})

	t.Run("collects fields", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		ae := NewErrorContext().
			WithOperation("run workflow").
			WithResource("all").
			WithSuggestion("one").
			WithSuggestion("two").
			Wrap(cause).
			Build()

		if ae.Operation != "run workflow" || ae.Resource != "all" {
			t.Errorf("unexpected fields: %+v", ae)
		}
		if len(ae.Suggestions) != 2 {
			t.Errorf("Suggestions = %v, want 2 entries", ae.Suggestions)
		}
		if !errors.Is(ae, cause) {
			t.Error("built error should wrap the cause")
		}
	})
}
