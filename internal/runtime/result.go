// SPDX-License-Identifier: MPL-2.0

package runtime

import "github.com/projrun/projrun/pkg/types"

// NewErrorResult creates a Result for a failure to run at all.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err, FailedLine: -1}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{FailedLine: -1}
}

// NewLineResult creates a Result for line index line exiting with code.
func NewLineResult(line int, code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err, FailedLine: line}
}
