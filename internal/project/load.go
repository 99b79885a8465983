// SPDX-License-Identifier: MPL-2.0

package project

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/projrun/projrun/pkg/cueutil"

	"gopkg.in/yaml.v3"
)

// FileNames lists the accepted project file names in lookup order.
var FileNames = []string{"project.cue", "project.yml", "project.yaml"}

//go:embed project_schema.cue
var schema []byte

// NotFoundError is returned by Load when dir holds none of FileNames.
type NotFoundError struct {
	Dir string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no project file in %s (looked for %v)", e.Dir, FileNames)
}

// Unwrap returns ErrProjectNotFound.
func (e *NotFoundError) Unwrap() error { return ErrProjectNotFound }

// Find returns the path of the project file in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", &NotFoundError{Dir: dir}
}

// Load finds, parses and validates the project file in dir.
func Load(dir string) (*Project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}

	path, err := Find(absDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	p, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	p.Dir = absDir
	p.FilePath = path

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse decodes project file contents. The format is chosen by the
// extension of path; anything but .yml/.yaml is read as CUE.
func Parse(data []byte, path string) (*Project, error) {
	name := filepath.Base(path)

	var (
		result *cueutil.ParseResult[Project]
		err    error
	)
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, name); err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		result, err = cueutil.DecodeValue[Project](schema, doc, "#Project", cueutil.WithFilename(name))
	default:
		result, err = cueutil.ParseAndDecode[Project](schema, data, "#Project", cueutil.WithFilename(name))
	}
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}
