// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/projrun/projrun/pkg/platform"
)

var (
	// ErrProjectNotFound is returned when a directory holds no project file.
	ErrProjectNotFound = errors.New("project file not found")
	// ErrCommandNotFound is the sentinel error wrapped by CommandNotFoundError.
	ErrCommandNotFound = errors.New("command not found")
	// ErrInvalidProject is the sentinel error wrapped by InvalidProjectError.
	ErrInvalidProject = errors.New("invalid project")
)

type (
	// Project is a parsed project file.
	Project struct {
		Title       string              `json:"title,omitempty"`
		Description string              `json:"description,omitempty"`
		Vars        map[string]any      `json:"vars,omitempty"`
		Env         map[string]string   `json:"env,omitempty"`
		Directories []string            `json:"directories,omitempty"`
		Commands    []Command           `json:"commands"`
		Workflows   map[string][]string `json:"workflows,omitempty"`

		// Dir is the absolute project directory.
		Dir string `json:"-"`
		// FilePath is the absolute path of the loaded project file.
		FilePath string `json:"-"`
	}

	// Command is a named list of script lines with declared inputs and outputs.
	Command struct {
		Name   string   `json:"name"`
		Help   string   `json:"help,omitempty"`
		Script []string `json:"script"`
		// Deps are paths, relative to the project directory, that must exist
		// before the command runs.
		Deps []string `json:"deps,omitempty"`
		// Outputs are paths the command must create. Their checksums are
		// recorded in the lock file.
		Outputs []string `json:"outputs,omitempty"`
		// OutputsNoCache are outputs that must exist but are not checksummed.
		OutputsNoCache []string `json:"outputs_no_cache,omitempty"`
		// NoSkip forces the command to run even when nothing changed.
		NoSkip bool `json:"no_skip,omitempty"`
	}

	// CommandNotFoundError is returned by Resolve for unknown names.
	CommandNotFoundError struct {
		Name      string
		Available []string
	}

	// InvalidProjectError collects the problems found by Validate.
	InvalidProjectError struct {
		FilePath string
		Problems []string
	}
)

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown command or workflow %q", e.Name)
	}
	return fmt.Sprintf("unknown command or workflow %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrCommandNotFound.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// Error implements the error interface.
func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("%s: %s", e.FilePath, strings.Join(e.Problems, "; "))
}

// Unwrap returns ErrInvalidProject.
func (e *InvalidProjectError) Unwrap() error { return ErrInvalidProject }

// Command returns the command with the given name.
func (p *Project) Command(name string) (Command, bool) {
	for _, c := range p.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// CommandNames returns command names in declaration order.
func (p *Project) CommandNames() []string {
	names := make([]string, 0, len(p.Commands))
	for _, c := range p.Commands {
		names = append(names, c.Name)
	}
	return names
}

// WorkflowNames returns workflow names sorted alphabetically.
func (p *Project) WorkflowNames() []string {
	return slices.Sorted(maps.Keys(p.Workflows))
}

// Validate checks cross-references the schema cannot express: command names
// are unique, workflow steps name existing commands at most once, and no
// workflow shares its name with a command.
func (p *Project) Validate() error {
	var problems []string

	seen := make(map[string]bool, len(p.Commands))
	for _, c := range p.Commands {
		if seen[c.Name] {
			problems = append(problems, fmt.Sprintf("duplicate command %q", c.Name))
		}
		seen[c.Name] = true
		for _, out := range slices.Concat(c.Outputs, c.OutputsNoCache) {
			if elem := platform.ReservedPathElement(out); elem != "" {
				problems = append(problems, fmt.Sprintf("command %q output %q uses reserved Windows file name %q", c.Name, out, elem))
			}
		}
	}

	for _, wf := range p.WorkflowNames() {
		if seen[wf] {
			problems = append(problems, fmt.Sprintf("workflow %q has the same name as a command", wf))
		}
		steps := make(map[string]bool)
		for _, step := range p.Workflows[wf] {
			if !seen[step] {
				problems = append(problems, fmt.Sprintf("workflow %q references unknown command %q", wf, step))
			}
			if steps[step] {
				problems = append(problems, fmt.Sprintf("workflow %q lists command %q more than once", wf, step))
			}
			steps[step] = true
		}
	}

	if len(problems) > 0 {
		return &InvalidProjectError{FilePath: p.FilePath, Problems: problems}
	}
	return nil
}

// Resolve returns the commands to run for name: the command itself, or the
// steps of the workflow in declared order. isWorkflow reports which it was.
func (p *Project) Resolve(name string) (cmds []Command, isWorkflow bool, err error) {
	if c, ok := p.Command(name); ok {
		return []Command{c}, false, nil
	}
	if steps, ok := p.Workflows[name]; ok {
		cmds = make([]Command, 0, len(steps))
		for _, step := range steps {
			c, ok := p.Command(step)
			if !ok {
				return nil, true, &CommandNotFoundError{Name: step, Available: p.CommandNames()}
			}
			cmds = append(cmds, c)
		}
		return cmds, true, nil
	}
	available := append(p.CommandNames(), p.WorkflowNames()...)
	return nil, false, &CommandNotFoundError{Name: name, Available: available}
}

// Path resolves a project-relative path against the project directory.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir, filepath.FromSlash(rel))
}

// EnsureDirectories creates the declared directories under the project directory.
func (p *Project) EnsureDirectories() error {
	for _, d := range p.Directories {
		if err := os.MkdirAll(p.Path(d), 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return nil
}
