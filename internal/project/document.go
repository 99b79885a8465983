// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"strings"
)

// Markdown renders a README-style overview of the project's commands and workflows.
func (p *Project) Markdown() string {
	var sb strings.Builder

	title := p.Title
	if title == "" {
		title = "Project"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if p.Description != "" {
		sb.WriteString(p.Description)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Commands\n\n")
	sb.WriteString("| Command | Description | Deps | Outputs |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range p.Commands {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n", c.Name, c.Help, codeList(c.Deps), codeList(c.allOutputs()))
	}

	if len(p.Workflows) > 0 {
		sb.WriteString("\n## Workflows\n\n")
		sb.WriteString("| Workflow | Steps |\n")
		sb.WriteString("| --- | --- |\n")
		for _, name := range p.WorkflowNames() {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", name, strings.Join(wrapCode(p.Workflows[name]), " → "))
		}
	}

	return sb.String()
}

func codeList(items []string) string {
	return strings.Join(wrapCode(items), ", ")
}

func wrapCode(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "`" + s + "`"
	}
	return out
}
