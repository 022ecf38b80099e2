package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/oracle"
	"pontolink/internal/workflow"
)

func newDisambiguateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "disambiguate",
		Short: "Ask the configured oracle to settle ambiguous rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, cfg *config.Config, mgr *workflow.Manager) error {
				if !cfg.Oracle.Enabled {
					return fmt.Errorf("oracle disabled; set oracle.enabled in the config")
				}
				client := oracle.NewClient(cfg.OracleConfig())
				_, outcome, err := mgr.Disambiguate(runCtx, client)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Considered %d ambiguous row(s): %d resolved, %d declined\n",
					outcome.Considered, outcome.Applied, outcome.Declined)
				for _, violation := range outcome.Violations {
					fmt.Fprintf(out, "  rejected: %v\n", violation)
				}
				return nil
			})
		},
	}
}
