// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for fixing it. The catalog maps well-known failure kinds to
// Markdown help pages that the CLI renders with glamour.
package issue
