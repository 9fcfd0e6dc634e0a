package core

import (
	"slices"
	"strings"
)

// SortKey selects the field a query orders by.
type SortKey string

const (
	SortNone       SortKey = ""
	SortLabel      SortKey = "label"
	SortPrice      SortKey = "price"
	SortRating     SortKey = "rating"
	SortAdded      SortKey = "added"
	SortDifficulty SortKey = "difficulty"
	SortDuration   SortKey = "duration"
)

var SortKeys = []SortKey{SortLabel, SortPrice, SortRating, SortAdded, SortDifficulty, SortDuration}

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortLabel, nil
	}
	return parseEnum("sort", s, SortKeys)
}

// Direction orders a sorted query.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Predicate selects records in a query.
type Predicate[T any] func(T) bool

// Query filters and orders a collection snapshot. All predicates must
// match. Sorting is stable, so records with equal keys keep their
// insertion order in either direction.
type Query[T any] struct {
	Where     []Predicate[T]
	Sort      SortKey
	Direction Direction
}

// Match reports whether rec satisfies every predicate.
func (q Query[T]) Match(rec T) bool {
	for _, p := range q.Where {
		if p != nil && !p(rec) {
			return false
		}
	}
	return true
}

func apply[T Record[T]](items []T, q Query[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Match(it) {
			out = append(out, it)
		}
	}
	if q.Sort == SortNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := a.compare(b, q.Sort)
		if q.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// LabelContains matches records whose name contains term, ignoring case.
// An empty term matches everything.
func LabelContains[T Record[T]](term string) Predicate[T] {
	needle := strings.ToLower(term)
	return func(rec T) bool {
		return needle == "" || strings.Contains(strings.ToLower(rec.Label()), needle)
	}
}

func enumIs[T any, E ~string](want string, field func(T) E) Predicate[T] {
	if want == "" || want == All {
		return nil
	}
	return func(rec T) bool { return string(field(rec)) == want }
}

// CardStatusIs matches an exact opening status; All disables the filter.
func CardStatusIs(status string) Predicate[Card] {
	return enumIs(status, func(c Card) OpeningStatus { return c.OpeningStatus })
}

// CardManufacturerIs matches an exact manufacturer; All disables the filter.
func CardManufacturerIs(m string) Predicate[Card] {
	return enumIs(m, func(c Card) string { return c.Manufacturer })
}

func CardDiscontinued(discontinued bool) Predicate[Card] {
	return func(c Card) bool { return c.Discontinued == discontinued }
}

func WishlistTypeIs(t string) Predicate[WishlistItem] {
	return enumIs(t, func(w WishlistItem) ItemType { return w.Type })
}

// WishlistPriorityIn matches items whose priority falls into band.
func WishlistPriorityIn(band PriorityBand) Predicate[WishlistItem] {
	if band == "" || band == BandAll {
		return nil
	}
	return func(w WishlistItem) bool { return BandOf(w.Priority) == band }
}

func TrickGenreIs(genre string) Predicate[MagicTrick] {
	return enumIs(genre, func(m MagicTrick) string { return m.Genre })
}

func TrickAudienceIs(size string) Predicate[MagicTrick] {
	return enumIs(size, func(m MagicTrick) AudienceSize { return m.AudienceSize })
}

// TrickDifficultyAtMost matches tricks no harder than limit.
func TrickDifficultyAtMost(limit int) Predicate[MagicTrick] {
	return func(m MagicTrick) bool { return m.DifficultyRating <= limit }
}
