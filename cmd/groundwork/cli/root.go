package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func RootCmd(ctx context.Context, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          name,
		Short:        "Apply declarative provisioning plans to this host",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Help()
			os.Exit(1)
			return nil
		},
	}

	cmd.AddCommand(ApplyCmd(ctx, name))
	cmd.AddCommand(FetchCmd(ctx, name))
	cmd.AddCommand(ValidateCmd(ctx, name))
	cmd.AddCommand(InitCmd(ctx, name))
	cmd.AddCommand(VersionCmd(ctx, name))

	return cmd
}
