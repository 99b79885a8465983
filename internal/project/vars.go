// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownVariable is the sentinel error wrapped by UnknownVariableError.
var ErrUnknownVariable = errors.New("unknown variable")

type (
	// LookupEnvFunc reads an environment variable; os.LookupEnv in production.
	LookupEnvFunc func(string) (string, bool)

	// UnknownVariableError reports a ${vars.*} or ${env.*} reference that
	// cannot be resolved.
	UnknownVariableError struct {
		Ref string
	}
)

var refPattern = regexp.MustCompile(`\$\{(vars|env)\.([A-Za-z0-9_.-]+)\}`)

// Error implements the error interface.
func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable ${%s}", e.Ref)
}

// Unwrap returns ErrUnknownVariable.
func (e *UnknownVariableError) Unwrap() error { return ErrUnknownVariable }

// ApplyOverrides sets vars from command-line style overrides. Keys are dotted
// paths with an optional "vars." prefix; intermediate maps are created as
// needed. Values are stored verbatim as strings, so ${vars.*} expands to
// exactly the text given on the command line.
func (p *Project) ApplyOverrides(overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}
	if p.Vars == nil {
		p.Vars = make(map[string]any)
	}
	for key, raw := range overrides {
		path := strings.Split(strings.TrimPrefix(key, "vars."), ".")
		node := p.Vars
		for _, part := range path[:len(path)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				if _, exists := node[part]; exists {
					return fmt.Errorf("override %s: vars.%s is not a mapping", key, part)
				}
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
		node[path[len(path)-1]] = raw
	}
	return nil
}

// Substitute expands ${vars.path} and ${env.NAME} references in s. An env
// reference reads the environment variable mapped by the project's env
// section, or NAME itself when unmapped.
func (p *Project) Substitute(s string, lookupEnv LookupEnvFunc) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	var errs []error
	out := refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		m := refPattern.FindStringSubmatch(ref)
		scope, name := m[1], m[2]
		if scope == "env" {
			envName := name
			if mapped, ok := p.Env[name]; ok {
				envName = mapped
			}
			if v, ok := lookupEnv(envName); ok {
				return v
			}
			// Unset variables expand to empty, as in a shell.
			return ""
		}
		v, ok := lookupVar(p.Vars, name)
		if !ok {
			errs = append(errs, &UnknownVariableError{Ref: scope + "." + name})
			return ref
		}
		return formatVar(v)
	})
	return out, errors.Join(errs...)
}

func lookupVar(vars map[string]any, dotted string) (any, bool) {
	var cur any = vars
	for _, part := range strings.Split(dotted, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func formatVar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Expand returns a copy of the project with every reference in directories
// and command script lines, deps and outputs substituted.
func (p *Project) Expand(lookupEnv LookupEnvFunc) (*Project, error) {
	out := *p
	var errs []error

	sub := func(list []string) []string {
		if list == nil {
			return nil
		}
		res := make([]string, len(list))
		for i, s := range list {
			v, err := p.Substitute(s, lookupEnv)
			if err != nil {
				errs = append(errs, err)
			}
			res[i] = v
		}
		return res
	}

	out.Directories = sub(p.Directories)
	out.Commands = make([]Command, len(p.Commands))
	for i, c := range p.Commands {
		c.Script = sub(c.Script)
		c.Deps = sub(c.Deps)
		c.Outputs = sub(c.Outputs)
		c.OutputsNoCache = sub(c.OutputsNoCache)
		out.Commands[i] = c
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &out, nil
}
