package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/report"
	"pontolink/internal/workflow"
)

func newResumeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Reload the latest session and re-attach file handles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, result, err := mgr.Resume(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Session %s resumed: %d handle(s) attached\n", sess.ID, result.Attached)
				if result.Complete {
					fmt.Fprintln(out, "All resolved rows have their files available")
				} else {
					fmt.Fprintln(out, "Some resolved rows are still missing files; re-run resume after restoring them")
				}
				fmt.Fprintln(out, report.Summary(sess.Summarize()))
				return nil
			})
		},
	}
}
