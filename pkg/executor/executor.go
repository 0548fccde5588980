// Package executor runs the ordered provisioning steps of a plan against a
// target environment. Execution is strictly sequential: later steps depend
// on filesystem and package state left behind by earlier ones, so there is
// no parallelism and no reordering. Steps are atomic units, cancellation is
// only honored between steps.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/groundworkhq/groundwork/pkg/helpers"
	"github.com/groundworkhq/groundwork/pkg/plan"
	"github.com/groundworkhq/groundwork/pkg/target"
)

// Status is the outcome of a single step.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result records the outcome of one executed step. Steps that never ran
// because an earlier step failed hard have no Result at all.
type Result struct {
	Step       string
	Status     Status
	ExitCode   int
	Duration   time.Duration
	LogPath    string
	BestEffort bool
}

// Executor applies the steps of a plan, in order, exactly once each.
type Executor struct {
	output      io.Writer
	onStepStart func(index int, step plan.Step)
}

// Option configures an Executor.
type Option func(*Executor)

// WithOutput mirrors step output to the given writer, usually a spinner.
func WithOutput(w io.Writer) Option {
	return func(e *Executor) {
		e.output = w
	}
}

// WithStepStart registers a callback invoked right before each step runs.
func WithStepStart(fn func(index int, step plan.Step)) Option {
	return func(e *Executor) {
		e.onStepStart = fn
	}
}

// New returns a new Executor.
func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the steps against env. It returns a Result for every step
// that ran. On the first non best-effort failure it stops and returns a
// StepExecutionError; best-effort failures are logged and execution
// continues. Cancelling the context stops the sequence before the next
// step starts, never mid-step.
func (e *Executor) Run(ctx context.Context, steps []plan.Step, env *target.Environment) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("run cancelled before step %q: %w", step.Name, err)
		}

		if e.onStepStart != nil {
			e.onStepStart(i, step)
		}
		result, runErr := e.runStep(i, step, env)
		results = append(results, result)
		if runErr == nil {
			continue
		}
		if step.BestEffort {
			logrus.Warnf("Step %q failed (best effort, continuing): %v", step.Name, runErr)
			continue
		}
		return results, runErr
	}
	return results, nil
}

func (e *Executor) runStep(index int, step plan.Step, env *target.Environment) (Result, error) {
	logpath := env.PathToLog(fmt.Sprintf("step-%02d-%s.log", index+1, slug.Make(step.Name)))
	logfp, err := os.OpenFile(logpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		result := Result{
			Step:       step.Name,
			Status:     StatusFailed,
			ExitCode:   -1,
			LogPath:    logpath,
			BestEffort: step.BestEffort,
		}
		return result, &StepExecutionError{
			Index:    index,
			Name:     step.Name,
			ExitCode: -1,
			Err:      fmt.Errorf("unable to create step log file: %w", err),
		}
	}
	defer logfp.Close()

	captured := bytes.NewBuffer(nil)
	out := io.MultiWriter(logfp, captured)
	if e.output != nil {
		out = io.MultiWriter(logfp, captured, e.output)
	}

	stepenv := env.Env()
	for k, v := range step.Env {
		stepenv[k] = v
	}

	logrus.Debugf("running step %d: %q", index+1, step.Name)
	start := time.Now()
	runErr := helpers.RunCommandWithOptions(helpers.RunCommandOptions{
		Writer:    out,
		ErrWriter: out,
		Env:       stepenv,
		Dir:       step.Dir,
	}, step.Command, step.Args...)
	duration := time.Since(start)

	code, known := exitCode(runErr)
	result := Result{
		Step:       step.Name,
		ExitCode:   code,
		Duration:   duration,
		LogPath:    logpath,
		BestEffort: step.BestEffort,
	}

	if known && step.ExitCodeExpected(code) {
		result.Status = StatusSucceeded
		logrus.Debugf("step %q finished with exit code %d in %s", step.Name, code, duration)
		return result, nil
	}

	result.Status = StatusFailed
	return result, &StepExecutionError{
		Index:    index,
		Name:     step.Name,
		ExitCode: code,
		Output:   captured.String(),
		Err:      runErr,
	}
}

// exitCode extracts the process exit code from a command error. The second
// return is false when the command never ran, e.g. binary not found.
func exitCode(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return -1, false
}
