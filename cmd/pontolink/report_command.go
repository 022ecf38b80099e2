package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/report"
	"pontolink/internal/workflow"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var failuresOnly bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the per-row result table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.Latest(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := report.ShouldColorize(out)
				if failuresOnly {
					fmt.Fprintln(out, report.Failures(sess.Records, colorize))
					return nil
				}
				fmt.Fprintln(out, report.Records(sess.Records, colorize))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&failuresOnly, "failures", false, "List only rows that still need attention")
	return cmd
}
