package core

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"
)

// OpeningStatus tells whether a deck is still sealed.
type OpeningStatus string

const (
	StatusUnopened OpeningStatus = "unopened"
	StatusOpened   OpeningStatus = "opened"
	StatusNewDeck  OpeningStatus = "new-deck"
)

var OpeningStatuses = []OpeningStatus{StatusUnopened, StatusOpened, StatusNewDeck}

func ParseOpeningStatus(s string) (OpeningStatus, error) {
	return parseEnum("opening_status", s, OpeningStatuses)
}

// Finish is the card stock finish.
type Finish string

const (
	FinishStandard   Finish = "standard"
	FinishAirCushion Finish = "air-cushion"
	FinishLinen      Finish = "linen"
	FinishSmooth     Finish = "smooth"
	FinishEmbossed   Finish = "embossed"
	FinishPlastic    Finish = "plastic"
)

var Finishes = []Finish{FinishStandard, FinishAirCushion, FinishLinen, FinishSmooth, FinishEmbossed, FinishPlastic}

func ParseFinish(s string) (Finish, error) {
	return parseEnum("finish", s, Finishes)
}

// DesignStyle classifies the deck artwork.
type DesignStyle string

const (
	StyleClassic    DesignStyle = "classic"
	StyleModern     DesignStyle = "modern"
	StyleVintage    DesignStyle = "vintage"
	StyleMinimalist DesignStyle = "minimalist"
	StyleArtistic   DesignStyle = "artistic"
	StyleCustom     DesignStyle = "custom"
)

var DesignStyles = []DesignStyle{StyleClassic, StyleModern, StyleVintage, StyleMinimalist, StyleArtistic, StyleCustom}

func ParseDesignStyle(s string) (DesignStyle, error) {
	return parseEnum("design_style", s, DesignStyles)
}

// Values used for card fields a form or an import leaves blank.
const (
	DefaultOpeningStatus         = StatusUnopened
	DefaultFinish                = FinishStandard
	DefaultDesignStyle           = StyleClassic
	DefaultDesignRating  float64 = 3
)

// Card is one deck of playing cards in the collection.
// Prices are in USD.
type Card struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	PurchasePrice float64       `json:"purchase_price" yaml:"purchase_price"`
	CurrentPrice  float64       `json:"current_price" yaml:"current_price"`
	Manufacturer  string        `json:"manufacturer" yaml:"manufacturer"`
	Discontinued  bool          `json:"discontinued" yaml:"discontinued"`
	OpeningStatus OpeningStatus `json:"opening_status" yaml:"opening_status"`
	Website       string        `json:"website,omitempty" yaml:"website,omitempty"`
	DesignRating  float64       `json:"design_rating" yaml:"design_rating"`
	Finish        Finish        `json:"finish" yaml:"finish"`
	DesignStyle   DesignStyle   `json:"design_style" yaml:"design_style"`
	Notes         string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedDate     Date          `json:"added_date" yaml:"added_date"`
}

func (c Card) RecordID() string { return c.ID }
func (c Card) Label() string    { return c.Name }
func (c Card) Added() Date      { return c.AddedDate }

func (c Card) withIdentity(id string, added Date) Card {
	c.ID = id
	c.AddedDate = added
	return c
}

func (c Card) compare(o Card, key SortKey) int {
	switch key {
	case SortLabel:
		return strings.Compare(c.Name, o.Name)
	case SortPrice:
		return cmp.Compare(c.CurrentPrice, o.CurrentPrice)
	case SortRating:
		return cmp.Compare(c.DesignRating, o.DesignRating)
	case SortAdded:
		return strings.Compare(string(c.AddedDate), string(o.AddedDate))
	}
	return 0
}

// Validate checks the field ranges that the store itself does not enforce.
func (c Card) Validate() error {
	if err := checkLabel(c.Name); err != nil {
		return err
	}
	if err := checkPrice("purchase_price", c.PurchasePrice); err != nil {
		return err
	}
	if err := checkPrice("current_price", c.CurrentPrice); err != nil {
		return err
	}
	if err := checkEnum("opening_status", c.OpeningStatus, OpeningStatuses); err != nil {
		return err
	}
	if err := checkEnum("finish", c.Finish, Finishes); err != nil {
		return err
	}
	if err := checkEnum("design_style", c.DesignStyle, DesignStyles); err != nil {
		return err
	}
	if err := checkRating("design_rating", c.DesignRating, 0.5); err != nil {
		return err
	}
	return checkURL("website", c.Website)
}

// Gain is the change between purchase and current price. Percent is
// relative to the purchase price and only set when something was paid.
type Gain struct {
	Delta      decimal.Decimal
	Percent    decimal.Decimal
	HasPercent bool
}

var hundred = decimal.NewFromInt(100)

// Gain computes the price movement of the deck since purchase.
func (c Card) Gain() Gain {
	paid := decimal.NewFromFloat(c.PurchasePrice)
	g := Gain{Delta: decimal.NewFromFloat(c.CurrentPrice).Sub(paid)}
	if paid.IsPositive() {
		g.Percent = g.Delta.Div(paid).Mul(hundred)
		g.HasPercent = true
	}
	return g
}
