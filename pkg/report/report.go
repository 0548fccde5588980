// Package report collects the outcome of a provisioning run and renders it
// for humans and for files.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v2"

	"github.com/groundworkhq/groundwork/pkg/executor"
)

// StepReport is the serializable view of one executed step.
type StepReport struct {
	Name       string `yaml:"name"`
	Status     string `yaml:"status"`
	ExitCode   int    `yaml:"exitCode"`
	Duration   string `yaml:"duration"`
	LogPath    string `yaml:"logPath,omitempty"`
	BestEffort bool   `yaml:"bestEffort,omitempty"`
}

// Report is the full outcome of a run.
type Report struct {
	ID        string       `yaml:"id"`
	Plan      string       `yaml:"plan"`
	StartedAt time.Time    `yaml:"startedAt"`
	Duration  string       `yaml:"duration"`
	Succeeded bool         `yaml:"succeeded"`
	Failure   string       `yaml:"failure,omitempty"`
	Steps     []StepReport `yaml:"steps"`
}

// New builds a report out of executor results. runErr is the error the
// executor returned, nil on full success.
func New(planName string, startedAt time.Time, results []executor.Result, runErr error) *Report {
	r := &Report{
		ID:        uuid.New().String(),
		Plan:      planName,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt).Round(time.Millisecond).String(),
		Succeeded: runErr == nil,
	}
	if runErr != nil {
		r.Failure = runErr.Error()
	}
	for _, result := range results {
		r.Steps = append(r.Steps, StepReport{
			Name:       result.Step,
			Status:     string(result.Status),
			ExitCode:   result.ExitCode,
			Duration:   result.Duration.Round(time.Millisecond).String(),
			LogPath:    result.LogPath,
			BestEffort: result.BestEffort,
		})
	}
	return r
}

// Render writes a human readable table of the run to w.
func (r *Report) Render(w io.Writer) {
	writer := table.NewWriter()
	writer.AppendHeader(table.Row{"step", "status", "exit code", "duration"})
	for _, step := range r.Steps {
		status := step.Status
		if step.BestEffort && step.Status == string(executor.StatusFailed) {
			status = "failed (best effort)"
		}
		writer.AppendRow(table.Row{step.Name, status, step.ExitCode, step.Duration})
	}
	fmt.Fprintf(w, "%s\n", writer.Render())
}

// WriteFile marshals the report to YAML at the given path.
func (r *Report) WriteFile(fpath string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("unable to marshal report: %w", err)
	}
	if err := os.WriteFile(fpath, data, 0644); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}
