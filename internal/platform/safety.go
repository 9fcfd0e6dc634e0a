package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataPath determines the actual store file path based on safety
// rules. When forceTemp is set, a path outside the system temp directory is
// re-rooted into a namespaced temp directory, keeping only its file name.
func ResolveDataPath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultDataFileName
	}
	if !forceTemp {
		return userPath
	}

	// Paths already under the temp dir (t.TempDir()) are trusted as is.
	clean := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) {
		name = DefaultDataFileName
	}
	return filepath.Join(os.TempDir(), "deckhand-dev", name)
}
