package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/workflow"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <row> <path>",
		Short: "Record a manual file resolution for a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.Resolve(runCtx, rowID, args[1])
				if err != nil {
					return err
				}
				record, _ := sess.Record(rowID)
				fmt.Fprintf(cmd.OutOrStdout(), "Row %d now has %d manual resolution(s); validate to promote it\n",
					rowID, len(record.ManualResolutions))
				return nil
			})
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <row>",
		Short: "Promote a row's manual resolution to FOUND",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				if _, err := mgr.Validate(runCtx, rowID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Row %d validated\n", rowID)
				return nil
			})
		},
	}
}

func newIgnoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ignore <row>",
		Short: "Toggle a row's ignore flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.ToggleIgnore(runCtx, rowID)
				if err != nil {
					return err
				}
				record, _ := sess.Record(rowID)
				if record.Ignored {
					fmt.Fprintf(cmd.OutOrStdout(), "Row %d ignored\n", rowID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Row %d no longer ignored\n", rowID)
				}
				return nil
			})
		},
	}
}

func parseRowID(arg string) (int, error) {
	rowID, err := strconv.Atoi(arg)
	if err != nil || rowID <= 0 {
		return 0, fmt.Errorf("row must be a positive integer, got %q", arg)
	}
	return rowID, nil
}
