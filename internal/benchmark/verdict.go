// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"fmt"

	"github.com/projrun/projrun/pkg/types"
)

// Verdict turns the error returned by a benchmark run into an outcome.
type Verdict func(runErr error) (Outcome, types.ExitCode)

// ForcedFailure always fails with exit code 1, whatever the run returned.
// Benchmark runs are inspected by hand, so a completed run still marks the
// test as failed to surface its output.
func ForcedFailure(error) (Outcome, types.ExitCode) {
	return Failed, types.ExitCodeFailure
}

// RunResult passes when the run returned no error.
func RunResult(runErr error) (Outcome, types.ExitCode) {
	if runErr != nil {
		return Failed, types.ExitCodeFailure
	}
	return Passed, types.ExitCodeSuccess
}

// ParseVerdict returns the verdict named "forced" or "result".
func ParseVerdict(name string) (Verdict, error) {
	switch name {
	case "", "forced":
		return ForcedFailure, nil
	case "result":
		return RunResult, nil
	default:
		return nil, fmt.Errorf("unknown verdict %q (expected forced or result)", name)
	}
}
