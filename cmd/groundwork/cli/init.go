package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/assets"
)

func InitCmd(ctx context.Context, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter plan to the given path (default plan.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dstpath := "plan.yaml"
			if len(args) == 1 {
				dstpath = args[0]
			}
			if err := assets.MaterializeStarterPlan(dstpath); err != nil {
				return fmt.Errorf("unable to write starter plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dstpath)
			return nil
		},
	}
	return cmd
}
