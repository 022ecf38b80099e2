package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/report"
	"pontolink/internal/workflow"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the latest session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.Latest(runCtx)
				if errors.Is(err, workflow.ErrNoSession) {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved session; run 'pontolink run' first")
					return nil
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Session %s (created %s)\n", sess.ID, sess.CreatedAt.Format("2006-01-02 15:04"))
				fmt.Fprintln(out, report.Summary(sess.Summarize()))
				return nil
			})
		},
	}
}
