package executor

import (
	"fmt"
	"strings"
)

// StepExecutionError is returned when a non best-effort step exits with a
// code outside its expected set. It carries enough context for the caller
// to tell the user which step broke and what it printed.
type StepExecutionError struct {
	Index    int
	Name     string
	ExitCode int
	Output   string
	Err      error
}

func (e *StepExecutionError) Error() string {
	msg := fmt.Sprintf("step %d (%s) failed with exit code %d", e.Index+1, e.Name, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, lastLines(out, 5))
	}
	return msg
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}

// lastLines returns at most n trailing lines of s. Step output can be huge
// and the full capture is already on disk.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
