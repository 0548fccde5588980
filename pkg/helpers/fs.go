package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// MoveFile moves a file from one location to another, overwriting the
// destination if it exists. File mode is preserved.
func MoveFile(src, dst string) error {
	srcinfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source file: %w", err)
	}

	if srcinfo.IsDir() {
		return fmt.Errorf("cannot move directory %s", src)
	}

	srcfp, err := Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer srcfp.Close()

	opts := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	dstfp, err := OpenFile(dst, opts, srcinfo.Mode())
	if err != nil {
		return fmt.Errorf("open destination file: %w", err)
	}
	defer dstfp.Close()

	if _, err := io.Copy(dstfp, srcfp); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}

	if err := dstfp.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source file: %w", err)
	}

	return nil
}

// RemoveAll removes path if it's a file. If path is a directory, it only
// removes its contents. This is to handle the case where path is a bind
// mounted directory.
func RemoveAll(path string) error {
	info, err := os.Lstat(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat file: %w", err)
	}
	if os.IsNotExist(err) {
		return nil
	}
	if !info.IsDir() {
		return os.Remove(path)
	}
	d, err := Open(path)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	defer d.Close()
	names, err := d.Readdirnames(-1)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	var me error
	for _, name := range names {
		if err := os.RemoveAll(filepath.Join(path, name)); err != nil {
			me = multierr.Append(me, fmt.Errorf("remove %s: %w", name, err))
		}
	}
	return me
}

func Open(path string) (afero.File, error) {
	return os.Open(path)
}

func OpenFile(path string, flag int, perm os.FileMode) (afero.File, error) {
	return os.OpenFile(path, flag, perm)
}
