package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/deckhand/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// Watch reports changes made to the store file by other processes. The
// parent directory is watched, since atomic replacement swaps the inode.
// Writes made through this repository are not reported. The channel is
// closed when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	pattern := r.config.WatchPattern
	if pattern == "" {
		pattern = filepath.Base(r.Path)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(r.Path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(r.Path), err)
	}

	events := make(chan core.Event, 16)
	w := &watchLoop{
		repo:    r,
		pattern: pattern,
		watcher: watcher,
		events:  events,
		fire:    make(chan struct{}, 1),
		existed: fileExists(r.Path),
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))
	return events, nil
}

// watchLoop owns the events channel: only run sends on it or closes it.
// The debounce timer merely signals fire.
type watchLoop struct {
	repo    *Repository
	pattern string
	watcher *fsnotify.Watcher
	events  chan core.Event

	fire    chan struct{}
	timer   *time.Timer
	existed bool
}

func (w *watchLoop) run(ctx context.Context) error {
	defer w.repo.setWatcherActive(false)
	defer close(w.events)
	defer w.watcher.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.repo.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			w.schedule()

		case <-w.fire:
			e, ok := w.check()
			if !ok {
				continue
			}
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.repo.reportWatchError(err)
		}
	}
}

func (w *watchLoop) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	match, err := doublestar.Match(w.pattern, filepath.Base(event.Name))
	return err == nil && match
}

// schedule coalesces bursts of events into one check after watchDebounce.
func (w *watchLoop) schedule() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *watchLoop) stopTimer() {
	if w.timer != nil {
		w.timer.Stop()
	}
}

// check compares the file on disk with what the repository knows and
// returns the event to emit, if any.
func (w *watchLoop) check() (core.Event, bool) {
	var eType core.EventType
	data, err := os.ReadFile(w.repo.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if !w.existed {
			return core.Event{}, false
		}
		eType = core.EventDelete
	case err != nil:
		w.repo.reportWatchError(err)
		return core.Event{}, false
	case w.repo.isOwnContent(data):
		w.existed = true
		return core.Event{}, false
	case w.existed:
		eType = core.EventModify
	default:
		eType = core.EventCreate
	}
	w.existed = eType != core.EventDelete
	return core.Event{Type: eType, ID: w.repo.Path, Timestamp: time.Now().Unix()}, true
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watcher error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
