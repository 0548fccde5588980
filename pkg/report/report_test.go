package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/groundworkhq/groundwork/pkg/executor"
)

func sampleResults() []executor.Result {
	return []executor.Result{
		{Step: "refresh package index", Status: executor.StatusSucceeded, Duration: 1200 * time.Millisecond},
		{Step: "install runtime", Status: executor.StatusFailed, ExitCode: 100, Duration: 300 * time.Millisecond},
	}
}

func TestNew(t *testing.T) {
	runErr := errors.New("step 2 (install runtime) failed with exit code 100")
	r := New("php-pdf-worker", time.Now().Add(-2*time.Second), sampleResults(), runErr)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "php-pdf-worker", r.Plan)
	assert.False(t, r.Succeeded)
	assert.Contains(t, r.Failure, "install runtime")
	require.Len(t, r.Steps, 2)
	assert.Equal(t, "succeeded", r.Steps[0].Status)
	assert.Equal(t, 100, r.Steps[1].ExitCode)
}

func TestRender(t *testing.T) {
	r := New("test", time.Now(), sampleResults(), nil)
	buf := bytes.NewBuffer(nil)
	r.Render(buf)

	assert.Contains(t, buf.String(), "refresh package index")
	assert.Contains(t, buf.String(), "install runtime")
	assert.Contains(t, buf.String(), "succeeded")
}

func TestWriteFile(t *testing.T) {
	r := New("test", time.Now(), sampleResults(), nil)
	fpath := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.WriteFile(fpath))

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, r.ID, decoded.ID)
	require.Len(t, decoded.Steps, 2)
	assert.Equal(t, "install runtime", decoded.Steps[1].Name)
}
