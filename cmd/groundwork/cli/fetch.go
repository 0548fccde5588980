package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/plan"
	"github.com/groundworkhq/groundwork/pkg/target"
)

func FetchCmd(ctx context.Context, name string) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "fetch <plan.yaml>",
		Short: "Fetch and install the plan's artifacts without running any step",
		Long: "Fetch downloads, verifies and installs every artifact declared in the " +
			"plan. Useful to stage artifacts ahead of time, e.g. before moving a host " +
			"behind an air gap.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.Parse(args[0])
			if err != nil {
				return fmt.Errorf("unable to load plan: %w", err)
			}
			env := target.NewEnvironment(dataDir)
			if err := fetchArtifacts(cmd.Context(), p, env); err != nil {
				return err
			}
			logrus.Infof("Fetched %d artifacts", len(p.Artifacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", target.DefaultDataDir, "Path to the data directory")

	return cmd
}
