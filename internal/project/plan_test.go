// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"slices"
	"testing"

	"github.com/projrun/projrun/internal/dag"
)

func names(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

func TestPlan(t *testing.T) {
	t.Parallel()

	preprocess := Command{Name: "preprocess", Outputs: []string{"corpus/train.spacy"}}
	train := Command{Name: "train", Deps: []string{"corpus/train.spacy"}, Outputs: []string{"training/model-best"}}
	evaluate := Command{Name: "evaluate", Deps: []string{"./training/model-best"}, OutputsNoCache: []string{"metrics"}}
	report := Command{Name: "report", Deps: []string{"metrics"}}

	tests := []struct {
		name string
		in   []Command
		want []string
	}{
		{name: "declared order already valid", in: []Command{preprocess, train, evaluate}, want: []string{"preprocess", "train", "evaluate"}},
		{name: "consumer listed first", in: []Command{train, preprocess}, want: []string{"preprocess", "train"}},
		{name: "no-cache outputs count", in: []Command{report, evaluate}, want: []string{"evaluate", "report"}},
		{name: "single", in: []Command{train}, want: []string{"train"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Plan(tt.in)
			if err != nil {
				t.Fatalf("Plan() error: %v", err)
			}
			if !slices.Equal(names(got), tt.want) {
				t.Errorf("Plan() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestPlan_Cycle(t *testing.T) {
	t.Parallel()

	a := Command{Name: "a", Deps: []string{"b.out"}, Outputs: []string{"a.out"}}
	b := Command{Name: "b", Deps: []string{"a.out"}, Outputs: []string{"b.out"}}

	_, err := Plan([]Command{a, b})
	if !errors.Is(err, dag.ErrCycle) {
		t.Fatalf("Plan() error = %v, want dag.ErrCycle", err)
	}
}

func TestPlan_SelfReferenceIgnored(t *testing.T) {
	t.Parallel()

	// A command that updates a file in place lists it as both dep and output.
	update := Command{Name: "update", Deps: []string{"db"}, Outputs: []string{"db"}}
	other := Command{Name: "other"}

	got, err := Plan([]Command{update, other})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if !slices.Equal(names(got), []string{"update", "other"}) {
		t.Errorf("Plan() = %v", names(got))
	}
}
