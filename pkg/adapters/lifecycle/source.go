// Package lifecycle publishes changes to the collection file as a
// github.com/aretw0/lifecycle event source.
package lifecycle

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/deckhand/pkg/core"
)

// Change is a lifecycle.Event describing what happened to the collection
// file outside this process.
type Change struct {
	Path string
	Type core.EventType
	At   time.Time
}

func (c Change) String() string {
	return fmt.Sprintf("[%s] %s %s", c.At.Format("15:04:05"), filepath.Base(c.Path), describe(c.Type))
}

func describe(t core.EventType) string {
	switch t {
	case core.EventCreate:
		return "was created"
	case core.EventDelete:
		return "was removed (in-memory collection kept)"
	default:
		return "was edited by another program"
	}
}

type changeSource struct {
	path   string
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps the events of Service.Watch. Only changes to the
// collection file at path are published; anything else is dropped.
func NewSource(events <-chan core.Event, path string) lifecycle.Source {
	return &changeSource{
		path:   filepath.Clean(path),
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start publishes until ctx is done or the watch ends, then closes Events.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				change, ok := s.translate(e)
				if !ok {
					continue
				}
				select {
				case s.out <- change:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func (s *changeSource) translate(e core.Event) (Change, bool) {
	if filepath.Clean(e.ID) != s.path {
		return Change{}, false
	}
	switch e.Type {
	case core.EventCreate, core.EventModify, core.EventDelete:
	default:
		return Change{}, false
	}
	return Change{Path: e.ID, Type: e.Type, At: time.Unix(e.Timestamp, 0)}, true
}
