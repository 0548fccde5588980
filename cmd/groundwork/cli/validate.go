package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/plan"
)

func ValidateCmd(ctx context.Context, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <plan.yaml>",
		Short: "Parse and validate a plan without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plan %q is valid: %d steps, %d artifacts\n", p.Name, len(p.Steps), len(p.Artifacts))
			return nil
		},
	}
	return cmd
}
