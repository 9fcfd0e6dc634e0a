package core

import (
	"context"
	"errors"
)

// Watch observes changes made to the store file by other processes, if the
// repository supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

// Follow reloads the collection whenever the store file changes outside
// this process, until ctx is done. onChange, if set, runs after each
// reload. A deleted or unreadable file is reported but does not wipe the
// in-memory collection; the next mutation writes it back.
func (s *Service) Follow(ctx context.Context, onChange func(Event)) error {
	events, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if e.Type == EventDelete {
				s.logger.Warn("store file removed, keeping in-memory collection", "path", e.ID)
			} else {
				s.logger.Info("store file changed, reloading", "path", e.ID, "type", e.Type)
				s.reload(ctx)
			}
			if onChange != nil {
				onChange(e)
			}
		}
	}
}

// reload swaps in the persisted snapshot only when it was read cleanly.
// Unlike Load, a failure keeps the current state, since a half-written
// file from another program must not replace a good collection.
func (s *Service) reload(ctx context.Context) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("could not reload collection, keeping in-memory state", "error", err)
	} else {
		s.store.replace(snap)
	}

	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}
