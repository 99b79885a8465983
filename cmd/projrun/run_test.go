// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projrun/projrun/internal/testutil"
)

const cliProject = `
vars: {who: "world"}
directories: ["out"]
commands: [
	{
		name: "greet"
		help: "Write a greeting"
		script: ["echo hello ${vars.who} > out/greeting.txt"]
		outputs: ["out/greeting.txt"]
	},
	{
		name: "fail"
		script: ["exit 3"]
	},
]
workflows: {all: ["greet"]}
`

func TestRun_Workflow(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	if err := cli.execute("run", "all", dir, "--var", "who=gopher"); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, cli.stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "greeting.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.TrimSpace(string(data)) != "hello gopher" {
		t.Errorf("greeting = %q", data)
	}
	if !strings.Contains(cli.stdout.String(), "greet") {
		t.Errorf("summary missing step: %q", cli.stdout.String())
	}

	cli.stdout.Reset()
	if err := cli.execute("run", "greet", dir, "--var", "who=gopher"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(cli.stdout.String(), "skipped") {
		t.Errorf("expected skipped step, got %q", cli.stdout.String())
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	if err := cli.execute("run", "greet", dir, "--dry"); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(cli.stdout.String(), "would run") {
		t.Errorf("output = %q", cli.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Error("dry run created directories")
	}
}

func TestRun_StepFailureExitCode(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	err := cli.execute("run", "fail", dir)
	if code := exitCode(t, err); code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(cli.stderr.String(), `command "fail" failed with exit code 3`) {
		t.Errorf("stderr = %q", cli.stderr.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	err := cli.execute("run", "deploy", dir)
	if code := exitCode(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(cli.stderr.String(), "projrun document") {
		t.Errorf("expected suggestion in stderr, got %q", cli.stderr.String())
	}
}

func TestRun_FlagValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad var", []string{"--var", "novalue"}, "expected key=value"},
		{"bad runtime", []string{"--runtime", "container"}, "invalid runtime mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli := newTestCLI(t, nil, nil)
			err := cli.execute(append([]string{"run", "all", t.TempDir()}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseVarOverrides(t *testing.T) {
	t.Parallel()

	got, err := parseVarOverrides([]string{"vars.a=1", " b =x=y", "c="})
	if err != nil {
		t.Fatalf("parseVarOverrides: %v", err)
	}
	want := map[string]string{"vars.a": "1", "b": "x=y", "c": ""}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestDocument_Raw(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	if err := cli.execute("document", dir, "--raw"); err != nil {
		t.Fatalf("document: %v", err)
	}
	out := cli.stdout.String()
	for _, want := range []string{"greet", "Write a greeting", "all"} {
		if !strings.Contains(out, want) {
			t.Errorf("document output missing %q:\n%s", want, out)
		}
	}
}

func TestDocument_Rendered(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteProject(t, cliProject)
	cli := newTestCLI(t, nil, nil)

	if err := cli.execute("document", dir); err != nil {
		t.Fatalf("document: %v", err)
	}
	if !strings.Contains(cli.stdout.String(), "greet") {
		t.Errorf("rendered output missing command:\n%s", cli.stdout.String())
	}
}

func TestDocument_MissingProject(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil, nil)
	err := cli.execute("document", t.TempDir())
	if code := exitCode(t, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(cli.stderr.String(), "No project file found") {
		t.Errorf("expected catalog help in stderr, got %q", cli.stderr.String())
	}
}

func TestRun_WatchRejectsDryRun(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil, nil)
	err := cli.execute("run", "all", testutil.WriteProject(t, cliProject), "--watch", "--dry")
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Errorf("err = %v", err)
	}
}
