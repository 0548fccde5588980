package cli

import (
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/target"
)

func RootCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   cli.Name,
		Short: "Serve staged provisioning artifacts over HTTP",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.bindFlags(cmd.Flags())
			return nil
		},
	}

	cmd.AddCommand(ServeCmd(cli))

	cmd.PersistentFlags().String("data-dir", target.DefaultDataDir, "Path to the data directory")

	cobra.OnInitialize(func() {
		cli.init()
	})

	return cmd
}
