// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteProject(t *testing.T) {
	t.Parallel()

	dir := WriteProject(t, "commands: []\n")
	if got := MustReadFile(t, filepath.Join(dir, "project.cue")); got != "commands: []" {
		t.Errorf("project.cue = %q", got)
	}
}

func TestMustWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	MustWriteFile(t, path, "x")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
