// SPDX-License-Identifier: MPL-2.0

// Package platform identifies host operating systems.
//
// Platform values are passed explicitly to the components that branch on the
// host OS, so those decisions can be exercised in tests for any platform
// without touching process-wide state. Current reports the platform this
// binary was built for.
package platform
