// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/projrun/projrun/internal/project"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newDocumentCommand creates the `projrun document` command.
func newDocumentCommand(app *App) *cobra.Command {
	var raw bool

	docCmd := &cobra.Command{
		Use:   "document [dir]",
		Short: "Show a project's commands and workflows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			sess, err := app.start(cmd)
			if err != nil {
				return err
			}

			p, err := project.Load(dir)
			if err != nil {
				svcErr := classifyError(err, "load project", dir)
				renderServiceError(app.stderr, svcErr, app.verbose, app.markdownStyle(sess.cfg), sess.logger)
				cmd.SilenceErrors = true
				return &ExitError{Code: svcErr.Code}
			}

			md := p.Markdown()
			if raw {
				fmt.Fprint(app.stdout, md)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(app.markdownStyle(sess.cfg)),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("create markdown renderer: %w", err)
			}
			out, err := renderer.Render(md)
			if err != nil {
				return fmt.Errorf("render project documentation: %w", err)
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}

	docCmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without terminal styling")
	return docCmd
}
