// SPDX-License-Identifier: MPL-2.0

// Package runtime executes command script lines.
//
// Two runtime implementations are available:
//   - native: runs each line through the host shell (sh/bash, or cmd/PowerShell on Windows)
//   - virtual: runs each line with the embedded mvdan/sh interpreter
//
// Lines run in order and in isolation: shell state such as `cd` or variable
// assignments does not carry over from one line to the next. The first line
// that exits non-zero stops the command and its status becomes the result.
package runtime
