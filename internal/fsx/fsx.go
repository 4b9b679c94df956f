// Package fsx holds the few filesystem primitives the pipeline relies on:
// atomic whole-file writes and no-overwrite copies. Both stage data in a
// hidden temp file in the destination directory and rename it into place, so
// readers never observe a partially written file.
package fsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic writes data to dir/name, replacing any existing file.
func WriteFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return stageAndRename(dir, name, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyFileNoOverwrite copies src to dir/name. It returns an error wrapping
// [os.ErrExist] when the destination already exists and leaves it untouched.
// The source's modification time is carried over.
func CopyFileNoOverwrite(src, dir, name string) error {
	dst := filepath.Join(dir, name)
	if fi, err := os.Lstat(dst); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", dst)
		}
		return fmt.Errorf("%s: %w", dst, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := stageAndRename(dir, name, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	}); err != nil {
		return err
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// stageAndRename fills a temp file in dir via fill, syncs it and renames it
// to dir/name. The temp file is removed on any failure.
func stageAndRename(dir, name string, perm os.FileMode, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := fill(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return err
	}
	_ = syncDir(dir)
	return nil
}

// syncDir is best-effort; directory fsync semantics vary across platforms.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
