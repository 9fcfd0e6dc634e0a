package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config holds the collaborators of a Service. Zero values are replaced by
// defaults.
type Config struct {
	Logger *slog.Logger
	Clock  func() time.Time
	NewID  func() string
}

// Service handles the business logic for the collection: validated CRUD on
// the three record kinds, vocabulary growth, and write-through persistence.
type Service struct {
	repo   Repository
	store  *Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu      sync.RWMutex
	loadErr error

	cards    *Collection[Card]
	wishlist *Collection[WishlistItem]
	tricks   *Collection[MagicTrick]
}

// NewService creates a Service backed by repo. The store starts with the
// default snapshot; call Load to read the persisted one.
func NewService(repo Repository, cfg Config) *Service {
	s := &Service{
		repo:   repo,
		store:  NewStore(DefaultSnapshot()),
		logger: cfg.Logger,
		now:    cfg.Clock,
		newID:  cfg.NewID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.cards = &Collection[Card]{svc: s, name: "cards", slot: func(sn *Snapshot) *[]Card { return &sn.Cards }}
	s.wishlist = &Collection[WishlistItem]{svc: s, name: "wishlist", slot: func(sn *Snapshot) *[]WishlistItem { return &sn.Wishlist }}
	s.tricks = &Collection[MagicTrick]{svc: s, name: "magic_tricks", slot: func(sn *Snapshot) *[]MagicTrick { return &sn.MagicTricks }}
	return s
}

// Cards returns the card collection.
func (s *Service) Cards() *Collection[Card] { return s.cards }

// Wishlist returns the wishlist collection.
func (s *Service) Wishlist() *Collection[WishlistItem] { return s.wishlist }

// Tricks returns the magic trick collection.
func (s *Service) Tricks() *Collection[MagicTrick] { return s.tricks }

// Load replaces the in-memory state with the persisted snapshot. A failure
// to read is not fatal: the service continues on whatever the repository
// could recover (defaults at worst) and the failure is kept as a warning.
func (s *Service) Load(ctx context.Context) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("could not load collection, starting from defaults", "error", err)
		if snap.Version == 0 {
			snap = DefaultSnapshot()
		}
	}
	s.store.replace(snap)

	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}

// LoadWarning returns the error recorded by the last Load, if any.
func (s *Service) LoadWarning() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Snapshot returns a copy of the whole collection.
func (s *Service) Snapshot() Snapshot {
	return s.store.Snapshot()
}

// mutate runs fn against a copy of the state and saves the result before
// making it current. Every successful mutation is written through.
func (s *Service) mutate(ctx context.Context, op string, fn func(*Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.store.update(fn, func(next Snapshot) error {
		if err := s.repo.Save(ctx, next); err != nil {
			var perr *PersistenceError
			if errors.Is(err, ErrReadOnly) || errors.As(err, &perr) {
				return err
			}
			return &PersistenceError{Op: "save", Err: err}
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("mutation refused", "op", op, "error", err)
		return err
	}
	s.logger.Debug("collection saved", "op", op)
	return nil
}

// AddVocabulary appends value to a controlled vocabulary unless it is
// already present (case-sensitive). The list stays sorted. It reports
// whether the list grew.
func (s *Service) AddVocabulary(ctx context.Context, kind VocabularyKind, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, invalid(string(kind), "entry must not be empty")
	}

	var added bool
	err := s.mutate(ctx, "add "+string(kind), func(sn *Snapshot) error {
		list := sn.vocabulary(kind)
		if list == nil {
			return invalid("vocabulary", "unknown kind %q", kind)
		}
		*list, added = insertVocabulary(*list, value)
		if !added {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	return added, err
}

// errUnchanged aborts a mutation that would not change anything, so no
// write happens.
var errUnchanged = errors.New("unchanged")

// Vocabulary returns a copy of the requested vocabulary.
func (s *Service) Vocabulary(kind VocabularyKind) []string {
	var out []string
	s.store.read(func(sn *Snapshot) {
		if list := sn.vocabulary(kind); list != nil {
			out = slices.Clone(*list)
		}
	})
	return out
}

// ReplaceCards swaps the whole card collection, as a bulk import does.
// Cards without an ID get a fresh one; cards without a date get today.
func (s *Service) ReplaceCards(ctx context.Context, cards []Card) error {
	today := DateOf(s.now())
	next := make([]Card, len(cards))
	for i, c := range cards {
		if err := checkLabel(c.Name); err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
		id, added := c.ID, c.AddedDate
		if id == "" {
			id = s.newID()
		}
		if added == "" {
			added = today
		}
		next[i] = c.withIdentity(id, added)
	}
	return s.mutate(ctx, "replace cards", func(sn *Snapshot) error {
		sn.Cards = next
		return nil
	})
}

// Collection exposes CRUD for one record kind.
type Collection[T Record[T]] struct {
	svc  *Service
	name string
	slot func(*Snapshot) *[]T
}

// Name returns the collection's name in the snapshot.
func (c *Collection[T]) Name() string { return c.name }

// Create validates the label, stamps a new ID and today's date, appends the
// record and saves.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := checkLabel(rec.Label()); err != nil {
		return zero, err
	}
	rec = rec.withIdentity(c.svc.newID(), DateOf(c.svc.now()))
	err := c.svc.mutate(ctx, "create "+c.name, func(sn *Snapshot) error {
		items := c.slot(sn)
		*items = append(*items, rec)
		return nil
	})
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the referenced record wholesale. The ID is kept, and so
// is the added date unless rec sets one.
func (c *Collection[T]) Update(ctx context.Context, ref Ref, rec T) (T, error) {
	var zero, updated T
	if err := checkLabel(rec.Label()); err != nil {
		return zero, err
	}
	err := c.svc.mutate(ctx, "update "+c.name, func(sn *Snapshot) error {
		items := *c.slot(sn)
		i := locate(items, ref)
		if i < 0 {
			return notFound(c.name, ref)
		}
		prev := items[i]
		added := rec.Added()
		if added == "" {
			added = prev.Added()
		}
		updated = rec.withIdentity(prev.RecordID(), added)
		items[i] = updated
		return nil
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// Remove deletes the referenced record and returns it.
func (c *Collection[T]) Remove(ctx context.Context, ref Ref) (T, error) {
	var zero, removed T
	err := c.svc.mutate(ctx, "remove "+c.name, func(sn *Snapshot) error {
		items := c.slot(sn)
		i := locate(*items, ref)
		if i < 0 {
			return notFound(c.name, ref)
		}
		removed = (*items)[i]
		*items = slices.Delete(*items, i, i+1)
		return nil
	})
	if err != nil {
		return zero, err
	}
	return removed, nil
}

// Get returns a copy of the referenced record.
func (c *Collection[T]) Get(ref Ref) (T, error) {
	var (
		rec T
		err error
	)
	c.svc.store.read(func(sn *Snapshot) {
		items := *c.slot(sn)
		if i := locate(items, ref); i >= 0 {
			rec = items[i]
			return
		}
		err = notFound(c.name, ref)
	})
	return rec, err
}

// Query returns the records matching q in the requested order. The result
// is a copy; the collection itself is never reordered.
func (c *Collection[T]) Query(q Query[T]) []T {
	var items []T
	c.svc.store.read(func(sn *Snapshot) {
		items = *c.slot(sn)
		items = apply(items, q)
	})
	return items
}

// All returns every record in insertion order.
func (c *Collection[T]) All() []T {
	return c.Query(Query[T]{})
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	var n int
	c.svc.store.read(func(sn *Snapshot) { n = len(*c.slot(sn)) })
	return n
}
