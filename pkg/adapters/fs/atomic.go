package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix names the staging files written next to the store file.
const TempFilePrefix = "deckhand-tmp-"

// writeFileAtomic replaces filename with data so that a crash leaves either
// the old or the new collection on disk, never a mix. An existing file keeps
// its mode; perm applies only when the file is created.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	mode, err := targetMode(filename, perm)
	if err != nil {
		return err
	}

	// Staged in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage store file: %w", err)
	}
	staged := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(staged)
		}
	}()

	if err := writeAndSync(tmp, data); err != nil {
		return fmt.Errorf("failed to write staged store file: %w", err)
	}
	if err := os.Chmod(staged, mode); err != nil {
		return fmt.Errorf("failed to set store file mode: %w", err)
	}
	if err := os.Rename(staged, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	committed = true

	// The rename is only durable once the directory entry is.
	if err := syncDir(dir); err != nil {
		return fmt.Errorf("failed to sync %s: %w", dir, err)
	}
	return nil
}

func targetMode(filename string, perm os.FileMode) (os.FileMode, error) {
	info, err := os.Stat(filename)
	switch {
	case err == nil:
		return info.Mode().Perm(), nil
	case errors.Is(err, os.ErrNotExist):
		return perm, nil
	default:
		return 0, fmt.Errorf("failed to stat store file: %w", err)
	}
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func syncDir(dir string) error {
	// Directories cannot be opened for sync on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
