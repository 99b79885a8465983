// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/projrun/projrun/internal/watch"

	"github.com/spf13/cobra"
)

// watchProject runs name once, then again whenever one of its inputs
// changes, until the context is cancelled (Ctrl+C).
func watchProject(cmd *cobra.Command, app *App, name, dir string, flags runFlags) error {
	if flags.dryRun {
		return fmt.Errorf("--watch and --dry cannot be used together")
	}

	opts, err := flags.options()
	if err != nil {
		return err
	}

	sess, err := app.start(cmd)
	if err != nil {
		return err
	}

	ws, err := sess.newRunner(app.stdout, app.stderr).Watch(dir, name, opts)
	if err != nil {
		svcErr := classifyError(err, "watch "+name, dir)
		renderServiceError(app.stderr, svcErr, app.verbose, app.markdownStyle(sess.cfg), sess.logger)
		cmd.SilenceErrors = true
		return &ExitError{Code: svcErr.Code}
	}

	rerun := func(context.Context, []string) error {
		err := runOnce(cmd, app, sess, name, dir, false, opts)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			// Already rendered; keep watching.
			return nil
		}
		return err
	}

	w, err := watch.New(watch.Config{
		BaseDir:  ws.Dir,
		Patterns: watch.PathPatterns(ws.Inputs...),
		Ignore:   watch.PathPatterns(ws.Outputs...),
		OnChange: rerun,
		Logger:   sess.logger,
	})
	if err != nil {
		return err
	}

	if err := rerun(cmd.Context(), nil); err != nil {
		return err
	}

	sess.logger.Info("watching for changes (Ctrl+C to stop)", "inputs", ws.Inputs)
	return w.Run(cmd.Context())
}
