// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"testing"
)

func fakeEnv(env map[string]string) LookupEnvFunc {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	p := &Project{
		Vars: map[string]any{
			"config":   "nel.cfg",
			"gpu_id":   -1,
			"dropout":  0.25,
			"training": map[string]any{"max_steps": 2000},
		},
		Env: map[string]string{"gpu": "CUDA_VISIBLE_DEVICES"},
	}
	env := fakeEnv(map[string]string{"CUDA_VISIBLE_DEVICES": "0", "HOME": "/home/x"})

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "train ${vars.config}", want: "train nel.cfg"},
		{in: "--gpu-id ${vars.gpu_id}", want: "--gpu-id -1"},
		{in: "--dropout ${vars.dropout}", want: "--dropout 0.25"},
		{in: "--max-steps ${vars.training.max_steps}", want: "--max-steps 2000"},
		{in: "${env.gpu}", want: "0"},
		{in: "${env.HOME}/x", want: "/home/x/x"},
		{in: "${env.UNSET}", want: ""},
		{in: "no refs $HOME", want: "no refs $HOME"},
		{in: "${vars.missing}", wantErr: true},
		{in: "${vars.config.deeper}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := p.Substitute(tt.in, env)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVariable) {
					t.Fatalf("Substitute(%q) error = %v, want ErrUnknownVariable", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Substitute(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	p := &Project{Vars: map[string]any{"config": "nel.cfg", "training": map[string]any{"max_steps": 2000}}}
	err := p.ApplyOverrides(map[string]string{
		"vars.gpu_id":        "0",
		"config":             "small.cfg",
		"training.max_steps": "10",
		"training.dropout":   "0.1",
		"eval.strict":        "true",
		"kb_name":            "01",
		"flag":               "t",
		"limit":              "inf",
		"scale":              "1e3",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides() error: %v", err)
	}

	checks := map[string]string{
		"${vars.gpu_id}":             "0",
		"${vars.config}":             "small.cfg",
		"${vars.training.max_steps}": "10",
		"${vars.training.dropout}":   "0.1",
		"${vars.eval.strict}":        "true",
		"${vars.kb_name}":            "01",
		"${vars.flag}":               "t",
		"${vars.limit}":              "inf",
		"${vars.scale}":              "1e3",
	}
	for in, want := range checks {
		got, err := p.Substitute(in, fakeEnv(nil))
		if err != nil || got != want {
			t.Errorf("Substitute(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if err := p.ApplyOverrides(map[string]string{"config.x": "1"}); err == nil {
		t.Error("overriding below a scalar should fail")
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	p := &Project{
		Vars:        map[string]any{"corpus": "corpus", "name": "nel"},
		Directories: []string{"${vars.corpus}"},
		Commands: []Command{{
			Name:    "train",
			Script:  []string{"train ${vars.name}"},
			Deps:    []string{"${vars.corpus}/train.spacy"},
			Outputs: []string{"training/${vars.name}"},
		}},
	}

	out, err := p.Expand(fakeEnv(nil))
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	c := out.Commands[0]
	if c.Script[0] != "train nel" || c.Deps[0] != "corpus/train.spacy" || c.Outputs[0] != "training/nel" {
		t.Errorf("unexpected expansion: %+v", c)
	}
	if out.Directories[0] != "corpus" {
		t.Errorf("Directories = %v", out.Directories)
	}
	if p.Commands[0].Script[0] != "train ${vars.name}" {
		t.Error("Expand must not modify the receiver")
	}

	p.Commands[0].Script = append(p.Commands[0].Script, "${vars.nope}")
	if _, err := p.Expand(fakeEnv(nil)); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Expand() error = %v, want ErrUnknownVariable", err)
	}
}
