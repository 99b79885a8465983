// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/projrun/projrun/internal/project"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the lock file name inside the project directory.
const DefaultFileName = "project.lock"

type (
	// FileChecksum pairs a project-relative path with its checksum.
	FileChecksum struct {
		Path     string `yaml:"path"`
		Checksum string `yaml:"checksum"`
	}

	// Entry is the recorded state of one command.
	Entry struct {
		Command       string         `yaml:"cmd"`
		Script        []string       `yaml:"script"`
		Deps          []FileChecksum `yaml:"deps"`
		Outputs       []FileChecksum `yaml:"outputs"`
		RunnerVersion string         `yaml:"runner_version,omitempty"`
		ExecutionID   string         `yaml:"execution_id,omitempty"`
		CompletedAt   time.Time      `yaml:"completed_at,omitempty"`
	}

	// Lock is the in-memory form of a lock file.
	Lock struct {
		path    string
		entries map[string]Entry
	}

	// RecordMeta is stored alongside the checksums by Record.
	RecordMeta struct {
		RunnerVersion string
		ExecutionID   string
		CompletedAt   time.Time
	}
)

// Load reads the lock file at path. A missing file yields an empty lock.
func Load(path string) (*Lock, error) {
	l := &Lock{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lock file: %w", err)
	}

	if err := yaml.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("parse lock file %s: %w", path, err)
	}
	if l.entries == nil {
		l.entries = make(map[string]Entry)
	}
	return l, nil
}

// Path returns the lock file location.

// Entry returns the recorded entry for a command.
func (l *Lock) Entry(name string) (Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Snapshot computes the entry a command would have if recorded now.
func Snapshot(dir string, cmd project.Command) (Entry, error) {
	deps, err := checksums(dir, cmd.Deps)
	if err != nil {
		return Entry{}, err
	}
	outputs, err := checksums(dir, cmd.Outputs)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Command: cmd.Name,
		Script:  slices.Clone(cmd.Script),
		Deps:    deps,
		Outputs: outputs,
	}, nil
}

func checksums(dir string, paths []string) ([]FileChecksum, error) {
	out := make([]FileChecksum, 0, len(paths))
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, filepath.FromSlash(p))
		}
		sum, err := Checksum(full)
		if err != nil {
			return nil, err
		}
		out = append(out, FileChecksum{Path: p, Checksum: sum})
	}
	return out, nil
}

// NeedsRerun reports whether cmd must run, with a short reason. Commands
// marked no_skip always run. Otherwise a command runs when it has never
// completed, when its script changed, or when the checksum of any dep or
// output differs from the recorded one. Missing outputs have an empty
// checksum and therefore always differ.
func (l *Lock) NeedsRerun(dir string, cmd project.Command) (bool, string, error) {
	if cmd.NoSkip {
		return true, "no_skip is set", nil
	}

	locked, ok := l.entries[cmd.Name]
	if !ok {
		return true, "no previous run", nil
	}

	current, err := Snapshot(dir, cmd)
	if err != nil {
		return false, "", err
	}

	switch {
	case !slices.Equal(current.Script, locked.Script):
		return true, "script changed", nil
	case !slices.Equal(current.Deps, locked.Deps):
		return true, "deps changed", nil
	case !slices.Equal(current.Outputs, locked.Outputs):
		for _, o := range current.Outputs {
			if o.Checksum == "" {
				return true, "output missing: " + o.Path, nil
			}
		}
		return true, "outputs changed", nil
	}
	return false, "", nil
}

// Record stores a fresh snapshot of cmd. Call Save to persist it.
func (l *Lock) Record(dir string, cmd project.Command, meta RecordMeta) error {
	entry, err := Snapshot(dir, cmd)
	if err != nil {
		return err
	}
	entry.RunnerVersion = meta.RunnerVersion
	entry.ExecutionID = meta.ExecutionID
	entry.CompletedAt = meta.CompletedAt
	l.entries[cmd.Name] = entry
	return nil
}

// Save writes the lock file atomically by renaming a temporary file into place.
func (l *Lock) Save() error {
	data, err := yaml.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("encode lock file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".project.lock-*")
	if err != nil {
		return fmt.Errorf("create temp lock file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()        // Best-effort close on error path
		_ = os.Remove(tmpName) // Best-effort cleanup on error path
		return fmt.Errorf("write temp lock file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) // Best-effort cleanup on error path
		return fmt.Errorf("close temp lock file: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName) // Best-effort cleanup on error path
		return fmt.Errorf("replace lock file: %w", err)
	}
	return nil
}
