// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{in: "win32", want: Windows},
		{in: "windows", want: Windows},
		{in: "Windows", want: Windows},
		{in: "linux", want: Linux},
		{in: " linux ", want: Linux},
		{in: "darwin", want: Darwin},
		{in: "macos", want: Darwin},
		{in: "cygwin", wantErr: true},
		{in: "plan9", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPlatform) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownPlatform", tt.in, err)
				}
				var upErr *UnknownPlatformError
				if !errors.As(err, &upErr) || upErr.Value != tt.in {
					t.Errorf("Parse(%q) error does not carry the input value: %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsWindows(t *testing.T) {
	t.Parallel()

	if !Windows.IsWindows() {
		t.Error("Windows.IsWindows() = false")
	}
	for _, p := range []Platform{Linux, Darwin} {
		if p.IsWindows() {
			t.Errorf("%s.IsWindows() = true", p)
		}
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	if got := Current(); got.String() != runtime.GOOS {
		t.Errorf("Current() = %q, want %q", got, runtime.GOOS)
	}
}
