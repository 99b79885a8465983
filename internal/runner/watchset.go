// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"path/filepath"
	"slices"

	"github.com/projrun/projrun/internal/project"
)

// WatchSet lists the project-relative paths that feed a run and the paths a
// run writes. A file watcher re-runs on changes to Inputs and ignores Outputs.
type WatchSet struct {
	Dir     string
	Inputs  []string
	Outputs []string
}

// Watch resolves name like RunProject and returns its watch set. The project
// file is always an input. The lock file and every declared output are
// outputs, even when another step lists them as deps.
func (r *Runner) Watch(dir, name string, opts Options) (*WatchSet, error) {
	p, err := project.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := p.ApplyOverrides(opts.Overrides); err != nil {
		return nil, err
	}
	if p, err = p.Expand(r.lookupEnv()); err != nil {
		return nil, err
	}
	cmds, _, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}

	ws := &WatchSet{
		Dir:     p.Dir,
		Inputs:  []string{filepath.Base(p.FilePath)},
		Outputs: []string{r.lockFileName()},
	}
	for _, c := range cmds {
		ws.Inputs = append(ws.Inputs, c.Deps...)
		ws.Outputs = append(ws.Outputs, c.Outputs...)
		ws.Outputs = append(ws.Outputs, c.OutputsNoCache...)
	}
	ws.Inputs = compactPaths(ws.Inputs)
	ws.Outputs = compactPaths(ws.Outputs)
	return ws, nil
}

func compactPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(filepath.Clean(p))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
