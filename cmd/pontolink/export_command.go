package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pontolink/internal/config"
	"pontolink/internal/workflow"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workbook with the resolution column filled in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(runCtx context.Context, _ *config.Config, mgr *workflow.Manager) error {
				sess, err := mgr.Latest(runCtx)
				if err != nil {
					return err
				}

				if strings.TrimSpace(outputPath) == "" {
					return mgr.Export(cmd.OutOrStdout(), sess)
				}
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer file.Close()
				if err := mgr.Export(file, sess); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default stdout)")
	return cmd
}
