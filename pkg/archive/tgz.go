// Package archive knows how to unpack the tarball formats artifacts are
// shipped in.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Uncompress decompresses a .tgz file into a directory.
func Uncompress(tgz, dst string) error {
	fp, err := os.Open(tgz)
	if err != nil {
		return fmt.Errorf("unable to open tgz file: %w", err)
	}
	defer fp.Close()

	gzreader, err := gzip.NewReader(fp)
	if err != nil {
		return fmt.Errorf("unable to create gzip reader: %w", err)
	}
	defer gzreader.Close()

	tarreader := tar.NewReader(gzreader)
	for {
		header, err := tarreader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("unable to read tar header: %w", err)
		}

		path, err := sanitizePath(dst, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("unable to create directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("unable to create parent directory: %w", err)
			}
			opts := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			outfp, err := os.OpenFile(path, opts, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("unable to create file: %w", err)
			}
			if _, err := io.Copy(outfp, tarreader); err != nil {
				outfp.Close()
				return fmt.Errorf("unable to write file: %w", err)
			}
			outfp.Close()
			if err := os.Chmod(path, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("unable to chmod file: %w", err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("unable to create parent directory: %w", err)
			}
			if err := os.Symlink(header.Linkname, path); err != nil {
				return fmt.Errorf("unable to create symlink: %w", err)
			}
		default:
			return fmt.Errorf("unknown type: %v", header.Typeflag)
		}
	}
	return nil
}

// sanitizePath joins name to dst and refuses entries that would land
// outside dst.
func sanitizePath(dst, name string) (string, error) {
	path := filepath.Join(dst, name)
	if !strings.HasPrefix(path, filepath.Clean(dst)+string(os.PathSeparator)) && path != filepath.Clean(dst) {
		return "", fmt.Errorf("illegal path %q in archive", name)
	}
	return path, nil
}
