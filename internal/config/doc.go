// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/projrun/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/projrun/config.cue on macOS, %APPDATA%\projrun\config.cue
// on Windows), then from ./config.cue when the former is absent. Environment variables
// prefixed with PROJRUN_ override file values, e.g. PROJRUN_LOG_LEVEL=debug or
// PROJRUN_BENCH_NEL_PROJECT=/path/to/nel.
//
// Files are validated against the embedded CUE schema (config_schema.cue); the decoded
// Config is validated again after environment overrides are applied.
package config
