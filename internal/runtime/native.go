// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/projrun/projrun/pkg/platform"
	"github.com/projrun/projrun/pkg/types"
)

// NativeRuntime executes script lines with the host shell.
type NativeRuntime struct {
	// Platform selects the default shell: sh (or bash) on Unix, cmd on
	// Windows. Defaults to platform.Current().
	Platform platform.Platform
	// Shell overrides the default shell.
	Shell string
	// ShellArgs are passed to the shell before the line.
	ShellArgs []string
}

// NewNativeRuntime creates a native runtime for the current platform.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{Platform: platform.Current()}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(ModeNative)
}

// Available returns whether a shell can be found.
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Execute runs each line through the shell.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	shell, err := r.getShell()
	if err != nil {
		return NewErrorResult(types.ExitCodeFailure, err)
	}
	baseArgs := r.getShellArgs(shell)
	env := append(os.Environ(), EnvToSlice(ctx.Env)...)

	for i, line := range ctx.Script {
		args := append(append([]string(nil), baseArgs...), line)
		cmd := exec.CommandContext(ctx.context(), shell, args...)
		cmd.Dir = ctx.WorkDir
		cmd.Env = env
		cmd.Stdout = ctx.Stdout
		cmd.Stderr = ctx.Stderr
		cmd.Stdin = ctx.Stdin

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return NewLineResult(i, exitCodeOf(exitErr), nil)
			}
			return NewLineResult(i, types.ExitCodeFailure, fmt.Errorf("failed to execute line %d: %w", i+1, err))
		}
	}

	return NewSuccessResult()
}

func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	p := r.Platform
	if p == "" {
		p = platform.Current()
	}

	// Script lines are POSIX, so the login shell ($SHELL) is never used.
	if p.IsWindows() {
		return exec.LookPath("cmd")
	}
	if sh, err := exec.LookPath("sh"); err == nil {
		return sh, nil
	}
	if bash, err := exec.LookPath("bash"); err == nil {
		return bash, nil
	}
	return "", fmt.Errorf("no shell found")
}

// exitCodeOf maps a process exit status into the 0-255 range. A process
// killed by a signal reports 128+signal, as a POSIX shell does.
func exitCodeOf(exitErr *exec.ExitError) types.ExitCode {
	if code := types.ExitCode(exitErr.ExitCode()); code.Validate() == nil {
		return code
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.ExitCode(128 + int(ws.Signal()))
	}
	return types.ExitCodeFailure
}

func (r *NativeRuntime) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
