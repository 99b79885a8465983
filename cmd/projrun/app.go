// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/projrun/projrun/internal/benchmark"
	"github.com/projrun/projrun/internal/config"
	"github.com/projrun/projrun/internal/runner"
	"github.com/projrun/projrun/internal/runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config ConfigProvider
		// BenchRunner replaces the project runner used by `bench`; nil means
		// a runner.Runner built from the loaded config.
		BenchRunner benchmark.ProjectRunner
		// MarkdownStyle overrides the glamour style chosen from ui.color_scheme.
		MarkdownStyle string
		stdout        io.Writer
		stderr        io.Writer

		verbose bool
		cfgFile string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config        ConfigProvider
		BenchRunner   benchmark.ProjectRunner
		MarkdownStyle string
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Source(ctx context.Context, opts config.LoadOptions) (string, error)
	}

	// session is the per-invocation state derived from flags and config.
	session struct {
		cfg    *config.Config
		logger *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:        deps.Config,
		BenchRunner:   deps.BenchRunner,
		MarkdownStyle: deps.MarkdownStyle,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
	}
}

// start loads configuration and builds the logger for one command invocation.
// A load failure is rendered and returned as an ExitError.
func (a *App) start(cmd *cobra.Command) (*session, error) {
	cfg, err := a.Config.Load(cmd.Context(), a.loadOptions())
	if err != nil {
		return nil, a.configFailure(cmd, err)
	}

	level := cfg.LogLevel.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: "projrun",
		Level:  level,
	})

	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
	}

	return &session{cfg: cfg, logger: logger}, nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.cfgFile}
}

// configFailure renders a configuration load error with its catalog entry.
func (a *App) configFailure(cmd *cobra.Command, err error) error {
	resource := a.cfgFile
	if resource == "" {
		resource = config.ConfigFileName + "." + config.ConfigFileExt
	}
	svcErr := classifyError(&configLoadError{err: err}, "load configuration", resource)
	renderServiceError(a.stderr, svcErr, a.verbose, a.markdownStyle(config.DefaultConfig()), log.New(a.stderr))
	cmd.SilenceErrors = true
	return &ExitError{Code: svcErr.Code, Err: err}
}

// newRunner builds a project runner from the session's config.
func (s *session) newRunner(stdout, stderr io.Writer) *runner.Runner {
	r := runner.New(s.logger)
	r.DefaultMode = runtime.Mode(s.cfg.DefaultRuntime)
	r.LockFile = s.cfg.LockFile
	r.Version = Version
	r.Stdout = stdout
	r.Stderr = stderr
	return r
}

// markdownStyle returns the glamour style for the configured color scheme.
func (a *App) markdownStyle(cfg *config.Config) string {
	if a.MarkdownStyle != "" {
		return a.MarkdownStyle
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}
