// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows Platform = "windows"
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
)

// ErrUnknownPlatform is the sentinel error wrapped by UnknownPlatformError.
var ErrUnknownPlatform = errors.New("unknown platform")

type (
	// Platform is a normalized operating system identifier.
	Platform string

	// UnknownPlatformError is returned by Parse for unrecognized identifiers.
	UnknownPlatformError struct {
		Value string
	}
)

// aliases maps the identifiers other toolchains report (Python's sys.platform,
// marketing names) to GOOS names.
var aliases = map[string]Platform{
	"windows": Windows,
	"win32":   Windows,
	"darwin":  Darwin,
	"macos":   Darwin,
	"osx":     Darwin,
	"linux":   Linux,
	"linux2":  Linux,
}

// Error implements the error interface.
func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q (expected one of: linux, darwin, windows)", e.Value)
}

// Unwrap returns ErrUnknownPlatform for errors.Is.
func (e *UnknownPlatformError) Unwrap() error { return ErrUnknownPlatform }

// Current returns the platform of the running binary.
func Current() Platform {
	return Platform(runtime.GOOS)
}

// Parse normalizes a platform identifier. Matching is case-insensitive.
func Parse(s string) (Platform, error) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &UnknownPlatformError{Value: s}
	}
	return p, nil
}

// IsWindows reports whether p is Windows.
func (p Platform) IsWindows() bool { return p == Windows }

// String returns the GOOS name of the platform.
func (p Platform) String() string { return string(p) }
