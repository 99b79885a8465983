// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projrun/projrun/internal/issue"

	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("expected default runtime to be virtual, got %s", cfg.DefaultRuntime)
	}
	if cfg.LockFile != "project.lock" {
		t.Errorf("expected default lock file to be project.lock, got %s", cfg.LockFile)
	}
	if cfg.LogLevel != LogLevelInfo {
		t.Errorf("expected default log level to be info, got %s", cfg.LogLevel)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != "" && !strings.HasSuffix(path, "config.cue") {
		t.Errorf("unexpected source path %q", path)
	}
	if path == "" && *cfg != *DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
default_runtime: "native"
log_level: "debug"
bench: nel_project: "/data/nel"
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("DefaultRuntime = %s, want native", cfg.DefaultRuntime)
	}
	if cfg.LogLevel.Level() != log.DebugLevel {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.Bench.NELProject != "/data/nel" {
		t.Errorf("Bench.NELProject = %q", cfg.Bench.NELProject)
	}
	// Unset fields keep their defaults.
	if cfg.LockFile != "project.lock" || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown runtime", `default_runtime: "container"`},
		{"unknown field", `editor: "vim"`},
		{"lock file path", `lock_file: "locks/project.lock"`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"syntax error", `log_level: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfig(t, tt.content)
			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected error")
			}

			var actionable *issue.ActionableError
			if !errors.As(err, &actionable) {
				t.Fatalf("expected ActionableError, got %T", err)
			}
			if actionable.Operation != "load configuration" {
				t.Errorf("Operation = %q", actionable.Operation)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("err = %v, want config file not found", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSource(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `log_level: "debug"`)
	path, err := NewProvider().Source(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Source() error: %v", err)
	}
	if want := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt); path != want {
		t.Errorf("Source() = %q, want %q", path, want)
	}

	path, err = NewProvider().Source(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil || path != "" {
		t.Errorf("Source() without a file = %q, %v; want empty", path, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROJRUN_DEFAULT_RUNTIME", "native")
	t.Setenv("PROJRUN_BENCH_NEL_PROJECT", "/env/nel")

	dir := writeConfig(t, `default_runtime: "virtual"`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("DefaultRuntime = %s, want env override native", cfg.DefaultRuntime)
	}
	if cfg.Bench.NELProject != "/env/nel" {
		t.Errorf("Bench.NELProject = %q", cfg.Bench.NELProject)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("PROJRUN_LOG_LEVEL", "chatty")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("err = %v, want ErrInvalidLogLevel", err)
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DefaultRuntime = RuntimeNative
	cfg.Bench.NELProject = "bench/nel"

	dir := writeConfig(t, GenerateCUE(cfg))
	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DefaultRuntime = "container"
	cfg.UI.ColorScheme = "neon"
	cfg.LockFile = " "

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, ErrInvalidConfigRuntimeMode) || !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("field sentinels not reachable from %v", err)
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) || len(cfgErr.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3", cfgErr)
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   LogLevel
		want log.Level
	}{
		{LogLevelDebug, log.DebugLevel},
		{LogLevelWarn, log.WarnLevel},
		{LogLevelError, log.ErrorLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := tt.in.Level(); got != tt.want {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
