package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/deckhand/pkg/core"
)

// Repository implements core.Repository on a single file that holds the
// whole collection.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	lastDigest    [sha256.Size]byte // content last written or read by us
	known         bool              // whether lastDigest is set
	lastSave      *time.Time
	watcherActive bool
}

// Config holds the configuration for the file repository.
type Config struct {
	Path     string // store file; its extension picks the format
	ReadOnly bool
	Logger   *slog.Logger

	// Serializers overrides the extension registry (see DefaultSerializers).
	Serializers map[string]Serializer

	// WatchPattern is matched (doublestar syntax) against the base name of
	// changed files. Defaults to the store file's base name.
	WatchPattern string

	// ErrorHandler receives watcher failures that are otherwise only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	registry := config.Serializers
	if registry == nil {
		registry = DefaultSerializers()
	}
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: serializerFor(config.Path, registry),
	}
}

// Initialize creates the parent directory of the store file.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		return fmt.Errorf("store path is empty")
	}
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Load reads the store file. A missing file yields the default snapshot.
// An unreadable or unparsable file also yields the default snapshot, along
// with a *core.PersistenceError for the caller to report.
func (r *Repository) Load(ctx context.Context) (core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return core.DefaultSnapshot(), err
	}

	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.config.Logger.Debug("store file not found, using defaults", "path", r.Path)
		return core.DefaultSnapshot(), nil
	}
	if err != nil {
		return core.DefaultSnapshot(), &core.PersistenceError{Op: "load", Path: r.Path, Err: err}
	}

	snap, err := r.serializer.Decode(data)
	if err != nil {
		r.config.Logger.Warn("store file is corrupt, using defaults", "path", r.Path, "error", err)
		return core.DefaultSnapshot(), &core.PersistenceError{Op: "load", Path: r.Path, Err: err}
	}
	if snap.Version > core.SchemaVersion {
		r.config.Logger.Warn("store file written by a newer version", "path", r.Path, "version", snap.Version)
	}
	snap.Normalize()

	r.remember(data)
	return snap, nil
}

// Save serializes snap and replaces the store file atomically.
func (r *Repository) Save(ctx context.Context, snap core.Snapshot) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	snap.Normalize()
	data, err := r.serializer.Encode(snap)
	if err != nil {
		return &core.PersistenceError{Op: "save", Path: r.Path, Err: fmt.Errorf("failed to serialize: %w", err)}
	}

	// Remember before writing so the watcher never mistakes our own write
	// for an external one.
	r.remember(data)
	if err := writeFileAtomic(r.Path, data, 0644); err != nil {
		return &core.PersistenceError{Op: "save", Path: r.Path, Err: err}
	}

	now := time.Now()
	r.mu.Lock()
	r.lastSave = &now
	r.mu.Unlock()

	r.config.Logger.Debug("store saved", "path", r.Path, "bytes", len(data))
	return nil
}

func (r *Repository) remember(data []byte) {
	sum := sha256.Sum256(data)
	r.mu.Lock()
	r.lastDigest = sum
	r.known = true
	r.mu.Unlock()
}

// isOwnContent reports whether data matches what this repository last
// wrote or read.
func (r *Repository) isOwnContent(data []byte) bool {
	sum := sha256.Sum256(data)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known && sum == r.lastDigest
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
