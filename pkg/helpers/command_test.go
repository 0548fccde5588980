package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandWithOptions_StderrInError(t *testing.T) {
	err := RunCommandWithOptions(RunCommandOptions{}, "sh", "-c", "echo broken >&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRunCommandWithOptions_Env(t *testing.T) {
	stdout := bytes.NewBuffer(nil)
	err := RunCommandWithOptions(RunCommandOptions{
		Writer: stdout,
		Env:    map[string]string{"GW_TEST_VAR": "value"},
	}, "sh", "-c", "echo $GW_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "value\n", stdout.String())
}

func TestRunCommandWithOptions_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present"), nil, 0644))

	stdout := bytes.NewBuffer(nil)
	err := RunCommandWithOptions(RunCommandOptions{
		Writer: stdout,
		Dir:    dir,
	}, "ls")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "present")
}
