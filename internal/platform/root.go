package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// LocalDataFiles are the store file names recognized by FindRoot, in order
// of preference.
var LocalDataFiles = []string{"deckhand.json", "deckhand.yaml", "deckhand.yml"}

// ErrRootNotFound is returned by FindRoot when no directory up to the
// filesystem root holds a store file.
var ErrRootNotFound = errors.New("no local collection found")

// FindRoot looks upwards from startDir for a directory holding one of
// LocalDataFiles and returns the absolute path of that file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range LocalDataFiles {
			if hasFile(dir, name) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
