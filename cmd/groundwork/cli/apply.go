package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/groundworkhq/groundwork/pkg/executor"
	"github.com/groundworkhq/groundwork/pkg/fetch"
	"github.com/groundworkhq/groundwork/pkg/helpers"
	"github.com/groundworkhq/groundwork/pkg/plan"
	"github.com/groundworkhq/groundwork/pkg/prompts"
	"github.com/groundworkhq/groundwork/pkg/report"
	"github.com/groundworkhq/groundwork/pkg/spinner"
	"github.com/groundworkhq/groundwork/pkg/target"
)

func ApplyCmd(ctx context.Context, name string) *cobra.Command {
	var (
		dataDir    string
		assumeYes  bool
		reportPath string
		extraEnv   []string
	)

	cmd := &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Fetch all artifacts and run all provisioning steps of a plan",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getuid() != 0 {
				logrus.Warnf("apply usually needs root, steps may fail")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.Parse(args[0])
			if err != nil {
				return fmt.Errorf("unable to load plan: %w", err)
			}

			env := target.NewEnvironment(dataDir)
			for _, kv := range extraEnv {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid --env value %q, expected KEY=VALUE", kv)
				}
				env.Setenv(parts[0], parts[1])
			}

			if !assumeYes {
				msg := fmt.Sprintf("Apply plan %q (%d artifacts, %d steps)?", p.Name, len(p.Artifacts), len(p.Steps))
				confirmed, err := prompts.New().Confirm(msg, false)
				if err != nil {
					return fmt.Errorf("unable to confirm: %w", err)
				}
				if !confirmed {
					return fmt.Errorf("apply aborted")
				}
			}

			logrus.Infof("Applying plan %q", p.Name)
			startedAt := time.Now()
			defer tryRemoveTmpDirContents(env)

			if err := fetchArtifacts(cmd.Context(), p, env); err != nil {
				return err
			}

			results, runErr := runSteps(cmd.Context(), p, env)

			run := report.New(p.Name, startedAt, results, runErr)
			run.Render(cmd.OutOrStdout())
			if reportPath != "" {
				if err := run.WriteFile(reportPath); err != nil {
					logrus.Warnf("Unable to write run report: %v", err)
				}
			}

			if runErr != nil {
				return fmt.Errorf("plan %q failed: %w", p.Name, runErr)
			}
			logrus.Infof("Plan %q applied", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", target.DefaultDataDir, "Path to the data directory")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes to all prompts")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run report to this path")
	cmd.Flags().StringArrayVar(&extraEnv, "env", nil, "Extra KEY=VALUE environment variables for every step")

	return cmd
}

// tryRemoveTmpDirContents clears leftover downloads from the tmp dir once a
// run finishes. Failures are not fatal, the next run overwrites anyway.
func tryRemoveTmpDirContents(env *target.Environment) {
	if err := helpers.RemoveAll(env.TmpSubDir()); err != nil {
		logrus.Debugf("failed to remove tmp dir contents: %v", err)
	}
}

// fetchArtifacts downloads and installs every artifact of the plan, keeping
// the user informed through a spinner.
func fetchArtifacts(ctx context.Context, p *plan.Plan, env *target.Environment) error {
	if len(p.Artifacts) == 0 {
		return nil
	}
	fetcher := fetch.New()
	for _, artifact := range p.Artifacts {
		mw := spinner.Start(spinner.WithTTY(prompts.IsTerminal()))
		mw.Infof("Fetching artifact %s", artifact.Name)
		if err := fetcher.Fetch(ctx, artifact, env); err != nil {
			mw.ErrorClosef("Failed to fetch artifact %s", artifact.Name)
			return err
		}
		mw.Closef("Artifact %s installed", artifact.Name)
	}
	return nil
}

// runSteps executes the plan steps with a spinner tracking the current one.
func runSteps(ctx context.Context, p *plan.Plan, env *target.Environment) ([]executor.Result, error) {
	if len(p.Steps) == 0 {
		return nil, nil
	}
	mw := spinner.Start(spinner.WithTTY(prompts.IsTerminal()))
	exec := executor.New(
		executor.WithOutput(mw),
		executor.WithStepStart(func(index int, step plan.Step) {
			mw.Infof("Running step %d of %d: %s", index+1, len(p.Steps), step.Name)
		}),
	)
	results, err := exec.Run(ctx, p.Steps, env)
	if err != nil {
		mw.ErrorClosef("Plan failed")
		return results, err
	}
	mw.Closef("All %d steps applied", len(p.Steps))
	return results, nil
}
