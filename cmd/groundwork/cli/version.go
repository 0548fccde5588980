package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/versions"
)

func VersionCmd(ctx context.Context, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Show the %s component versions", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := table.NewWriter()
			writer.AppendHeader(table.Row{"component", "version"})
			writer.AppendRow(table.Row{name, versions.Version})
			writer.AppendRow(table.Row{"go", runtime.Version()})
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", writer.Render())
			return nil
		},
	}
	return cmd
}
