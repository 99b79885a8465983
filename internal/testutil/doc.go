// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test
// on error, reducing boilerplate in project and runner tests.
//
// Common helpers include project fixtures (WriteProject) and file operations
// (MustWriteFile, MustReadFile, MustMkdirAll).
package testutil
