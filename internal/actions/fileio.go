package actions

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data through a synced temp file in the
// same directory, so path holds either its old or its new content
func writeFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	syncDir(dir)
	return nil
}

// syncDir makes a rename durable. Not every platform supports syncing a
// directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

// persistManifest writes the pre-image to path+backupSuffix and only then
// replaces path with the rewritten content
func persistManifest(path, backupSuffix string, original, rewritten []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return &FileError{Path: path, Op: "stat", Err: err}
	}
	perm := info.Mode().Perm()

	backupPath := path + backupSuffix
	if err := writeFileAtomic(backupPath, original, perm); err != nil {
		return &FileError{Path: backupPath, Op: "write backup", Err: err}
	}
	if err := writeFileAtomic(path, rewritten, perm); err != nil {
		return &FileError{Path: path, Op: "write", Err: err}
	}
	return nil
}
