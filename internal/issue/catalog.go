// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
)

// Issue IDs.
const (
	ProjectNotFoundID Id = iota + 1
	ProjectParseErrorID
	CommandNotFoundID
	MissingDependenciesID
	MissingOutputsID
	StepFailedID
	DependencyCycleID
	ConfigLoadFailedID
)

type (
	// Id identifies a catalog entry.
	//
	//nolint:revive // kept short for call sites like issue.Get(issue.StepFailedID)
	Id int

	// MarkdownMsg is Markdown help text.
	MarkdownMsg string

	// Issue is a catalog entry with Markdown guidance for a failure kind.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

var (
	render = glamour.Render

	catalog = []*Issue{
		{
			id: ProjectNotFoundID,
			mdMsg: `
# No project file found!

projrun looks for ` + "`project.cue`" + `, then ` + "`project.yml`" + `, then ` + "`project.yaml`" + ` in the project directory.

## Things you can try:
- Pass the project directory explicitly:
~~~
$ projrun run all ./benchmarks/nel
~~~`,
		},
		{
			id: ProjectParseErrorID,
			mdMsg: `
# Failed to parse the project file!

## Common issues:
- Invalid CUE or YAML syntax
- A command without a ` + "`name`" + ` or ` + "`script`" + `
- Unknown top-level fields

## Example command definition:
~~~cue
commands: [
  {
    name: "train"
    script: ["python scripts/train.py ${vars.config}"]
    deps: ["corpus/train.spacy"]
    outputs: ["training/model-best"]
  },
]
~~~`,
		},
		{
			id: CommandNotFoundID,
			mdMsg: `
# Command not found!

The name is neither a command nor a workflow of the project.

## Things you can try:
~~~
$ projrun document
~~~`,
		},
		{
			id: MissingDependenciesID,
			mdMsg: `
# Missing dependencies!

A command declares ` + "`deps`" + ` that do not exist yet. Run the commands that
produce them first, or run the whole workflow.`,
		},
		{
			id: MissingOutputsID,
			mdMsg: `
# Missing outputs!

The command finished but did not create every path listed in ` + "`outputs`" + `.`,
		},
		{
			id: StepFailedID,
			mdMsg: `
# Script execution failed!

A script line exited with a non-zero status. Later lines and later
workflow steps were not run.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` for the full error chain
- Run the failing line manually from the project directory`,
		},
		{
			id: DependencyCycleID,
			mdMsg: `
# Dependency cycle!

The workflow's commands consume each other's outputs in a loop, so no order exists.`,
		},
		{
			id: ConfigLoadFailedID,
			mdMsg: `
# Failed to load configuration!

Check ` + "`config.cue`" + ` in your config directory, or pass ` + "`--config`" + `.
~~~
$ projrun config show
~~~`,
		},
	}
)

// Id returns the issue ID.
func (i *Issue) Id() Id { return i.id } //nolint:revive // mirrors the type name

// MarkdownMsg returns the raw Markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the help text with the given glamour style ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// Values returns all catalog entries.
func Values() []*Issue {
	return slices.Clone(catalog)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	for _, i := range catalog {
		if i.id == id {
			return i
		}
	}
	return nil
}
