package core

import (
	"slices"
	"sync"
)

// SchemaVersion is written into every snapshot.
const SchemaVersion = 1

// Snapshot is the whole persisted state of a collection: the three record
// lists in insertion order and the two sorted vocabularies.
type Snapshot struct {
	Version       int            `json:"version" yaml:"version"`
	Cards         []Card         `json:"cards" yaml:"cards"`
	Wishlist      []WishlistItem `json:"wishlist" yaml:"wishlist"`
	MagicTricks   []MagicTrick   `json:"magic_tricks" yaml:"magic_tricks"`
	Manufacturers []string       `json:"manufacturers" yaml:"manufacturers"`
	Genres        []string       `json:"genres" yaml:"genres"`
}

// DefaultManufacturers seeds the manufacturer vocabulary.
var DefaultManufacturers = []string{
	"Bicycle", "Theory11", "Ellusionist", "Fontaine", "D&D", "Virtuoso",
	"Anyone", "Riffle Shuffle", "Kings Wild Project", "Art of Play",
	"Murphy's Magic", "Vanishing Inc", "Penguin Magic",
}

// DefaultGenres seeds the trick genre vocabulary.
var DefaultGenres = []string{
	"Card (prepared)", "Card (impromptu)", "Close-up (prepared)", "Close-up (impromptu)",
	"Everyday impromptu", "Coin", "Mentalism", "Stage", "Parlor", "Street",
}

// DefaultSnapshot returns an empty collection with the default vocabularies.
func DefaultSnapshot() Snapshot {
	s := Snapshot{
		Manufacturers: slices.Clone(DefaultManufacturers),
		Genres:        slices.Clone(DefaultGenres),
	}
	s.Normalize()
	return s
}

// Normalize fills nil lists, stamps the schema version and sorts and
// dedupes the vocabularies. It is applied to every loaded snapshot.
func (s *Snapshot) Normalize() {
	if s.Version == 0 {
		s.Version = SchemaVersion
	}
	if s.Cards == nil {
		s.Cards = []Card{}
	}
	if s.Wishlist == nil {
		s.Wishlist = []WishlistItem{}
	}
	if s.MagicTricks == nil {
		s.MagicTricks = []MagicTrick{}
	}
	s.Manufacturers = sortedVocabulary(s.Manufacturers)
	s.Genres = sortedVocabulary(s.Genres)
}

func sortedVocabulary(list []string) []string {
	out := slices.Clone(list)
	if out == nil {
		out = []string{}
	}
	out = slices.DeleteFunc(out, func(v string) bool { return v == "" })
	slices.Sort(out)
	return slices.Compact(out)
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Cards = slices.Clone(s.Cards)
	c.Wishlist = slices.Clone(s.Wishlist)
	c.MagicTricks = slices.Clone(s.MagicTricks)
	c.Manufacturers = slices.Clone(s.Manufacturers)
	c.Genres = slices.Clone(s.Genres)
	return c
}

// VocabularyKind names one of the controlled vocabularies.
type VocabularyKind string

const (
	Manufacturers VocabularyKind = "manufacturers"
	Genres        VocabularyKind = "genres"
)

func ParseVocabularyKind(s string) (VocabularyKind, error) {
	switch s {
	case "manufacturer":
		return Manufacturers, nil
	case "genre":
		return Genres, nil
	}
	return parseEnum("vocabulary", s, []VocabularyKind{Manufacturers, Genres})
}

func (s *Snapshot) vocabulary(kind VocabularyKind) *[]string {
	switch kind {
	case Manufacturers:
		return &s.Manufacturers
	case Genres:
		return &s.Genres
	}
	return nil
}

// insertVocabulary adds value to a sorted list unless an identical entry
// exists. Comparison is case-sensitive.
func insertVocabulary(list []string, value string) ([]string, bool) {
	i, found := slices.BinarySearch(list, value)
	if found {
		return list, false
	}
	return slices.Insert(list, i, value), true
}

// Store holds the current snapshot. Readers get copies; writers build the
// next snapshot aside and swap it in only once it has been persisted.
type Store struct {
	writeMu sync.Mutex // serializes mutations, including their save
	mu      sync.RWMutex
	snap    Snapshot
}

// NewStore creates a store holding a copy of snap.
func NewStore(snap Snapshot) *Store {
	snap = snap.Clone()
	snap.Normalize()
	return &Store{snap: snap}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

func (s *Store) read(fn func(*Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.snap)
}

// update applies fn to a copy of the current snapshot. When fn and persist
// both succeed the copy becomes current; otherwise nothing changes.
func (s *Store) update(fn func(*Snapshot) error, persist func(Snapshot) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Snapshot()
	if err := fn(&next); err != nil {
		return err
	}
	if persist != nil {
		if err := persist(next); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	return nil
}

// replace swaps in snap without persisting it. Used when reloading.
func (s *Store) replace(snap Snapshot) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	snap = snap.Clone()
	snap.Normalize()
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}
