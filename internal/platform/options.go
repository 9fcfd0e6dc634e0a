package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

// options holds the internal configuration for the deckhand service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	clock        func() time.Time
	serializers  map[string]fs.Serializer
	readOnly     bool
	devSafety    bool
	forceTemp    bool
	watchPattern string
	errorHandler func(error)
}

// Option defines a functional option for configuring deckhand.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		serializers: make(map[string]fs.Serializer),
		devSafety:   true,
	}
}

// WithLogger sets the logger for the service and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the default file adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithClock overrides the clock used to stamp added dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithSerializer registers a serializer for a store file extension
// (e.g. ".json"), replacing the built-in one.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Mutations return core.ErrReadOnly and leave the collection unchanged.
// 2. The data directory is never created.
// 3. Dev safety is bypassed, so the real file is read.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the store file is re-rooted into a temporary
// directory so a development build never touches a real collection.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithForceTemp forces the store file into the temporary sandbox (useful
// for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithWatchPattern sets the doublestar pattern matched against the base
// name of changed files. Defaults to the store file's name.
func WithWatchPattern(pattern string) Option {
	return func(o *options) {
		o.watchPattern = pattern
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the Watch loop (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
