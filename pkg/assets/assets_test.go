package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundworkhq/groundwork/pkg/plan"
)

func TestStarterPlanIsValid(t *testing.T) {
	data, err := StarterPlan()
	require.NoError(t, err)

	p, err := plan.ParseBytes(data)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Steps)
	assert.NotEmpty(t, p.Artifacts)
}

func TestMaterializeStarterPlan(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nested", "plan.yaml")
	require.NoError(t, MaterializeStarterPlan(dst))

	written, err := os.ReadFile(dst)
	require.NoError(t, err)
	embedded, err := StarterPlan()
	require.NoError(t, err)
	assert.Equal(t, embedded, written)

	// refuses to overwrite
	err = MaterializeStarterPlan(dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
