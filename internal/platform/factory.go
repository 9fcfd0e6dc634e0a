package platform

import (
	"context"

	"github.com/aretw0/deckhand/pkg/core"
)

// New opens the collection stored at path and loads it.
//
//	svc, err := deckhand.New("./collection.json", deckhand.WithReadOnly(true))
//
// A store file that cannot be read does not fail New: the service starts
// from the defaults and reports the problem through LoadWarning.
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	service := core.NewService(repo, core.Config{
		Logger: o.logger,
		Clock:  o.clock,
	})
	service.Load(context.Background())
	return service, nil
}
