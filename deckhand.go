package deckhand

import (
	"log/slog"
	"time"

	"github.com/aretw0/deckhand/internal/platform"
	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

// --- Types ---

// Service is the handle to an open collection.
type Service = core.Service

// Card is a public alias for a deck in the collection.
type Card = core.Card

// WishlistItem is a public alias for a wishlist entry.
type WishlistItem = core.WishlistItem

// MagicTrick is a public alias for a trick in the repertoire.
type MagicTrick = core.MagicTrick

// --- Configuration ---

// Option defines a functional option for configuring deckhand.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithClock overrides the clock used to stamp added dates.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithSerializer registers a serializer for a store file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the store file into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithWatchPattern sets the pattern matched against changed file names.
func WithWatchPattern(pattern string) Option {
	return platform.WithWatchPattern(pattern)
}

// WithWatcherErrorHandler registers a callback for errors in the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the collection stored at path.
func New(path string, opts ...Option) (*Service, error) {
	return platform.New(path, opts...)
}

// Init prepares the repository for the store file at path without loading it.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// IsDevRun reports whether the process runs under `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
