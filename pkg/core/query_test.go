package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names[T Record[T]](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label()
	}
	return out
}

func TestLabelContains(t *testing.T) {
	cards := []Card{{Name: "Bicycle Standard"}, {Name: "Monarch"}, {Name: "bicycle Rider Back"}}

	got := apply(cards, Query[Card]{Where: []Predicate[Card]{LabelContains[Card]("BICYCLE")}})
	assert.Equal(t, []string{"Bicycle Standard", "bicycle Rider Back"}, names(got))

	got = apply(cards, Query[Card]{Where: []Predicate[Card]{LabelContains[Card]("")}})
	assert.Len(t, got, 3)
}

func TestEnumFilters(t *testing.T) {
	cards := []Card{
		{Name: "a", OpeningStatus: StatusUnopened},
		{Name: "b", OpeningStatus: StatusOpened},
		{Name: "c", OpeningStatus: StatusUnopened},
	}

	tests := []struct {
		status string
		want   []string
	}{
		{"unopened", []string{"a", "c"}},
		{"opened", []string{"b"}},
		{"new-deck", []string{}},
		{All, []string{"a", "b", "c"}},
		{"", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := apply(cards, Query[Card]{Where: []Predicate[Card]{CardStatusIs(tt.status)}})
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestPriorityBands(t *testing.T) {
	tests := []struct {
		p    float64
		want PriorityBand
	}{
		{5, BandHigh},
		{4, BandHigh},
		{3.5, BandMedium},
		{2, BandMedium},
		{1.5, BandLow},
		{1, BandLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandOf(tt.p), "priority %v", tt.p)
	}

	items := []WishlistItem{{Name: "x", Priority: 4.5}, {Name: "y", Priority: 2}, {Name: "z", Priority: 1.5}}
	got := apply(items, Query[WishlistItem]{Where: []Predicate[WishlistItem]{WishlistPriorityIn(BandMedium)}})
	assert.Equal(t, []string{"y"}, names(got))
	got = apply(items, Query[WishlistItem]{Where: []Predicate[WishlistItem]{WishlistPriorityIn(BandAll)}})
	assert.Len(t, got, 3)
}

func TestFilterIdempotent(t *testing.T) {
	tricks := []MagicTrick{
		{Name: "Coins Across", Genre: "Coin", DifficultyRating: 4},
		{Name: "Card to Wallet", Genre: "Card (prepared)", DifficultyRating: 2},
		{Name: "Coin Matrix", Genre: "Coin", DifficultyRating: 3},
	}
	q := Query[MagicTrick]{
		Where: []Predicate[MagicTrick]{TrickGenreIs("Coin"), TrickDifficultyAtMost(3), LabelContains[MagicTrick]("coin")},
		Sort:  SortLabel,
	}

	once := apply(tricks, q)
	twice := apply(once, q)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"Coin Matrix"}, names(once))
}

func TestSortStable(t *testing.T) {
	cards := []Card{
		{Name: "first", DesignRating: 4},
		{Name: "second", DesignRating: 5},
		{Name: "third", DesignRating: 4},
		{Name: "fourth", DesignRating: 4},
	}

	desc := apply(cards, Query[Card]{Sort: SortRating, Direction: Descending})
	assert.Equal(t, []string{"second", "first", "third", "fourth"}, names(desc))

	asc := apply(cards, Query[Card]{Sort: SortRating, Direction: Ascending})
	assert.Equal(t, []string{"first", "third", "fourth", "second"}, names(asc))

	// Tricks carry no price, so every key compares equal.
	tricks := []MagicTrick{{Name: "b"}, {Name: "a"}}
	assert.Equal(t, []string{"b", "a"}, names(apply(tricks, Query[MagicTrick]{Sort: SortPrice})))
}

func TestSortByAddedDate(t *testing.T) {
	items := []WishlistItem{
		{Name: "old", AddedDate: "2024-01-02"},
		{Name: "new", AddedDate: "2025-11-30"},
		{Name: "mid", AddedDate: "2025-02-01"},
	}
	got := apply(items, Query[WishlistItem]{Sort: SortAdded, Direction: Descending})
	assert.Equal(t, []string{"new", "mid", "old"}, names(got))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("name")
	require.NoError(t, err)
	assert.Equal(t, SortLabel, k)

	k, err = ParseSortKey("Price")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, k)

	_, err = ParseSortKey("weight")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLocate(t *testing.T) {
	cards := []Card{{ID: "a1", Name: "x"}, {ID: "b2", Name: "y"}, {ID: "c3", Name: "x"}}

	assert.Equal(t, 0, locate(cards, ByName("x")))
	assert.Equal(t, 2, locate(cards, ByID("c3")))
	assert.Equal(t, 1, locate(cards, ByIndex(1)))
	assert.Equal(t, -1, locate(cards, ByIndex(-1)))
	assert.Equal(t, -1, locate(cards, ByIndex(3)))
	assert.Equal(t, -1, locate(cards, ByName("X")))
}
