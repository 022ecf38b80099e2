package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/report"
	"pontolink/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Classify every routed workbook row and save a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.Run(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, report.Summary(sess.Summarize()))
				return nil
			})
		},
	}
}
