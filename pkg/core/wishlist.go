package core

import (
	"cmp"
	"strings"
)

// ItemType is the kind of thing on the wishlist.
type ItemType string

const (
	ItemCard      ItemType = "card"
	ItemMagicProp ItemType = "magic-prop"
	ItemBook      ItemType = "book"
	ItemDVD       ItemType = "dvd"
	ItemOther     ItemType = "other"
)

var ItemTypes = []ItemType{ItemCard, ItemMagicProp, ItemBook, ItemDVD, ItemOther}

func ParseItemType(s string) (ItemType, error) {
	return parseEnum("type", s, ItemTypes)
}

// PriorityBand groups wishlist priorities for filtering.
type PriorityBand string

const (
	BandAll    PriorityBand = All
	BandHigh   PriorityBand = "high"
	BandMedium PriorityBand = "medium"
	BandLow    PriorityBand = "low"
)

var PriorityBands = []PriorityBand{BandAll, BandHigh, BandMedium, BandLow}

func ParsePriorityBand(s string) (PriorityBand, error) {
	if strings.TrimSpace(s) == "" {
		return BandAll, nil
	}
	return parseEnum("priority", s, PriorityBands)
}

// BandOf places p in its band: high is p >= 4, medium is 2 <= p < 4,
// low is p < 2.
func BandOf(p float64) PriorityBand {
	switch {
	case p >= 4:
		return BandHigh
	case p >= 2:
		return BandMedium
	default:
		return BandLow
	}
}

// WishlistItem is something the collector wants to buy. Price is in USD.
type WishlistItem struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Type      ItemType `json:"type" yaml:"type"`
	Price     float64  `json:"price" yaml:"price"`
	Website   string   `json:"website,omitempty" yaml:"website,omitempty"`
	Priority  float64  `json:"priority" yaml:"priority"`
	Notes     string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedDate Date     `json:"added_date" yaml:"added_date"`
}

func (w WishlistItem) RecordID() string { return w.ID }
func (w WishlistItem) Label() string    { return w.Name }
func (w WishlistItem) Added() Date      { return w.AddedDate }

func (w WishlistItem) withIdentity(id string, added Date) WishlistItem {
	w.ID = id
	w.AddedDate = added
	return w
}

func (w WishlistItem) compare(o WishlistItem, key SortKey) int {
	switch key {
	case SortLabel:
		return strings.Compare(w.Name, o.Name)
	case SortPrice:
		return cmp.Compare(w.Price, o.Price)
	case SortRating:
		return cmp.Compare(w.Priority, o.Priority)
	case SortAdded:
		return strings.Compare(string(w.AddedDate), string(o.AddedDate))
	}
	return 0
}

// Validate checks the field ranges that the store itself does not enforce.
func (w WishlistItem) Validate() error {
	if err := checkLabel(w.Name); err != nil {
		return err
	}
	if err := checkEnum("type", w.Type, ItemTypes); err != nil {
		return err
	}
	if err := checkPrice("price", w.Price); err != nil {
		return err
	}
	if err := checkRating("priority", w.Priority, 0.5); err != nil {
		return err
	}
	return checkURL("website", w.Website)
}
