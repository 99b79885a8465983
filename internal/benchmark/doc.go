// SPDX-License-Identifier: MPL-2.0

// Package benchmark gates and invokes benchmark projects.
//
// An Invoker runs one fixed benchmark project through a ProjectRunner and
// turns the result into a Report. The platform is passed in rather than read
// from the process, and the Report is returned to the caller instead of
// terminating the process, so a Go test or the CLI decides how to exit.
//
// The entity-linking (NEL) benchmark scripts are POSIX shell, so the NEL
// invoker skips Windows.
package benchmark
