package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "tool"), []byte("binary"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "run.log"), []byte("secret"), 0644))
	return dir
}

func TestRouter_ServesArtifacts(t *testing.T) {
	srv := httptest.NewServer(newRouter(testDataDir(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/bin/tool")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(body))
}

func TestRouter_FiltersLogs(t *testing.T) {
	srv := httptest.NewServer(newRouter(testDataDir(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/logs/run.log")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Healthz(t *testing.T) {
	srv := httptest.NewServer(newRouter(testDataDir(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeCmd_RequiresRoot(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root")
	}
	cli := NewCLI("groundwork-mirror")
	cmd := RootCmd(cli)
	cmd.SetArgs([]string{"serve"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be run as root")
}
