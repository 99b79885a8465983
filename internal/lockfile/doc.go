// SPDX-License-Identifier: MPL-2.0

// Package lockfile records what each command last ran with.
//
// After a command succeeds, its script and the checksums of its deps and
// outputs are stored in project.lock (YAML) next to the project file. A later
// run skips the command when recomputing that entry yields the same result.
package lockfile
