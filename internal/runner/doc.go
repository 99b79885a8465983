// SPDX-License-Identifier: MPL-2.0

// Package runner executes project commands and workflows.
//
// A run loads the project file, applies variable overrides, expands
// references, resolves the requested name to one command or a workflow,
// orders workflow steps by their file dependencies and then runs each step
// whose inputs or outputs changed since the lock file last recorded it.
package runner
