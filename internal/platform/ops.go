package platform

import (
	"context"
	"maps"

	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/core"
)

// Init prepares the repository for the store file at path and returns it.
// Unless an injected repository is used, the file adapter is created with
// dev safety applied and its directory initialized.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.repository != nil {
		return o.repository, nil
	}

	repo := initFS(path, o)
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// initFS handles the path resolution and configuration of the file adapter.
func initFS(path string, o *options) *fs.Repository {
	// Read-only never writes, so it is safe on the real path.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp:
			o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
		case IsDevRun() && o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case IsDevRun():
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}

	var serializers map[string]fs.Serializer
	if len(o.serializers) > 0 {
		serializers = fs.DefaultSerializers()
		maps.Copy(serializers, o.serializers)
	}

	return fs.NewRepository(fs.Config{
		Path:         resolved,
		ReadOnly:     o.readOnly,
		Logger:       o.logger,
		Serializers:  serializers,
		WatchPattern: o.watchPattern,
		ErrorHandler: o.errorHandler,
	})
}
