// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// RuntimeNative runs script lines through the host shell.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs script lines in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug and the following name charmbracelet/log levels.
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode specifies the default execution runtime.
	// Defined locally to avoid coupling config to internal/runtime;
	// the CLI converts to runtime.Mode at the boundary.
	RuntimeMode string

	// ColorScheme selects the CLI color palette.
	ColorScheme string

	// LogLevel is the minimum level of log records printed.
	LogLevel string

	// InvalidValueError is returned by the Validate methods of the enum types.
	InvalidValueError struct {
		Field string
		Value string
		Err   error
	}

	// InvalidConfigError collects every invalid field of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig contains terminal output settings.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// BenchConfig contains benchmark settings.
	BenchConfig struct {
		// NELProject overrides the entity-linking benchmark project directory.
		NELProject string `json:"nel_project" mapstructure:"nel_project"`
	}

	// Config holds the application configuration.
	Config struct {
		// DefaultRuntime is used when `run` is given no --runtime flag.
		DefaultRuntime RuntimeMode `json:"default_runtime" mapstructure:"default_runtime"`
		// LockFile is the lock file name inside each project directory.
		LockFile string `json:"lock_file" mapstructure:"lock_file"`
		// LogLevel is the default log level; --verbose forces debug.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Bench configures the benchmark commands.
		Bench BenchConfig `json:"bench" mapstructure:"bench"`
	}
)

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Value)
}

// Unwrap returns the field's sentinel error.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate returns an error if the runtime mode is not recognized.
func (m RuntimeMode) Validate() error {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return nil
	default:
		return &InvalidValueError{Field: "default_runtime", Value: string(m), Err: ErrInvalidConfigRuntimeMode}
	}
}

// Validate returns an error if the color scheme is not recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidValueError{Field: "ui.color_scheme", Value: string(c), Err: ErrInvalidColorScheme}
	}
}

// Validate returns an error if the log level is not recognized.
func (l LogLevel) Validate() error {
	if _, err := log.ParseLevel(string(l)); err != nil || l == "" {
		return &InvalidValueError{Field: "log_level", Value: string(l), Err: ErrInvalidLogLevel}
	}
	return nil
}

// Level converts to a charmbracelet/log level, falling back to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	var errs []error
	for _, err := range []error{
		c.DefaultRuntime.Validate(),
		c.LogLevel.Validate(),
		c.UI.ColorScheme.Validate(),
	} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.LockFile) == "" {
		errs = append(errs, fmt.Errorf("lock_file must not be empty"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultRuntime: RuntimeVirtual,
		LockFile:       "project.lock",
		LogLevel:       LogLevelInfo,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Bench: BenchConfig{},
	}
}
