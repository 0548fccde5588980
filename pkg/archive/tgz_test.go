package archive

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name     string
	typeflag byte
	body     string
	linkname string
	mode     int64
}

func writeTgz(t *testing.T, entries []entry) string {
	t.Helper()
	fpath := filepath.Join(t.TempDir(), "test.tgz")
	fp, err := os.Create(fpath)
	require.NoError(t, err)
	defer fp.Close()

	gzw := gzip.NewWriter(fp)
	tw := tar.NewWriter(gzw)
	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0755
		}
		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Mode:     mode,
			Size:     int64(len(e.body)),
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if e.typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return fpath
}

func TestUncompress(t *testing.T) {
	tgz := writeTgz(t, []entry{
		{name: "phantomjs-2.1.1/", typeflag: tar.TypeDir},
		{name: "phantomjs-2.1.1/bin/", typeflag: tar.TypeDir},
		{name: "phantomjs-2.1.1/bin/phantomjs", typeflag: tar.TypeReg, body: "#!/bin/true", mode: 0755},
		{name: "phantomjs-2.1.1/README", typeflag: tar.TypeReg, body: "readme", mode: 0644},
		{name: "phantomjs-2.1.1/latest", typeflag: tar.TypeSymlink, linkname: "bin/phantomjs"},
	})

	dst := t.TempDir()
	require.NoError(t, Uncompress(tgz, dst))

	data, err := os.ReadFile(filepath.Join(dst, "phantomjs-2.1.1", "bin", "phantomjs"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/true", string(data))

	info, err := os.Stat(filepath.Join(dst, "phantomjs-2.1.1", "bin", "phantomjs"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	link, err := os.Readlink(filepath.Join(dst, "phantomjs-2.1.1", "latest"))
	require.NoError(t, err)
	assert.Equal(t, "bin/phantomjs", link)
}

func TestUncompress_MissingParentDir(t *testing.T) {
	// files whose parent directory has no explicit tar entry still extract
	tgz := writeTgz(t, []entry{
		{name: "deep/nested/file", typeflag: tar.TypeReg, body: "x", mode: 0644},
	})
	dst := t.TempDir()
	require.NoError(t, Uncompress(tgz, dst))
	_, err := os.Stat(filepath.Join(dst, "deep", "nested", "file"))
	assert.NoError(t, err)
}

func TestUncompress_PathTraversal(t *testing.T) {
	tgz := writeTgz(t, []entry{
		{name: "../escape", typeflag: tar.TypeReg, body: "x", mode: 0644},
	})
	err := Uncompress(tgz, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal path")
}

func TestUncompress_NotGzip(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "bogus.tgz")
	require.NoError(t, os.WriteFile(fpath, []byte("this is not a tarball"), 0644))
	err := Uncompress(fpath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}
