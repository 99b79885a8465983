// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs project commands when their inputs change.
//
// A Watcher monitors a project directory and invokes a callback after a
// debounce period. Events within the debounce window are coalesced so the
// callback fires once with the full set of changed paths. Patterns select the
// paths that count as inputs; outputs and the lock file are ignored so that a
// run never triggers itself.
package watch
