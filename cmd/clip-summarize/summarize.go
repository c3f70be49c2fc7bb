package main

import (
	"github.com/spf13/cobra"

	"clip-summarize/internal/observability/logging"
)

func newSummarizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize one note and insert the summary into it",
		Long: `Summarize one note and insert the summary into it.

The path is resolved against the vault root unless it is absolute. Notes that
already contain a summary are left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.wire()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			ctx := logging.WithLogger(cmd.Context(), a.logger)
			return c.service.SummarizeFile(ctx, path)
		},
	}
}
