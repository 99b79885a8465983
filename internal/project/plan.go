// SPDX-License-Identifier: MPL-2.0

package project

import (
	"path/filepath"

	"github.com/projrun/projrun/internal/dag"
)

// Plan orders commands so that a command producing a path runs before any
// command listing that path in its deps. Commands keep their given order
// wherever the data flow allows. A circular data flow returns *dag.CycleError.
func Plan(cmds []Command) ([]Command, error) {
	if len(cmds) < 2 {
		return cmds, nil
	}

	g := dag.New()
	byName := make(map[string]Command, len(cmds))
	producers := make(map[string][]string)
	for _, c := range cmds {
		g.AddNode(c.Name)
		byName[c.Name] = c
		for _, out := range c.allOutputs() {
			key := filepath.Clean(out)
			producers[key] = append(producers[key], c.Name)
		}
	}

	for _, c := range cmds {
		for _, dep := range c.Deps {
			for _, producer := range producers[filepath.Clean(dep)] {
				if producer != c.Name {
					g.AddEdge(producer, c.Name)
				}
			}
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	planned := make([]Command, 0, len(order))
	for _, name := range order {
		planned = append(planned, byName[name])
	}
	return planned, nil
}

func (c Command) allOutputs() []string {
	return append(append([]string(nil), c.Outputs...), c.OutputsNoCache...)
}
