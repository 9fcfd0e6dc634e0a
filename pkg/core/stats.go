package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dashboard aggregates the collection for overview screens.
type Dashboard struct {
	TotalCards    int
	TotalTricks   int
	TotalWishlist int

	// Sums of card prices, in USD.
	TotalValue    decimal.Decimal
	TotalPaid     decimal.Decimal
	WishlistTotal decimal.Decimal

	ByStatus       map[OpeningStatus]int
	ByManufacturer map[string]int
	ByRating       map[string]int // design rating rendered as "4.5"
	ByGenre        map[string]int
	CardPrices     []float64

	// TrickPoints pairs difficulty and amazement per trick, in insertion order.
	TrickPoints []TrickPoint
}

// TrickPoint is one trick plotted by difficulty against amazement.
type TrickPoint struct {
	Name       string
	Difficulty int
	Amazement  int
}

// Gain returns the overall change from purchase to current value.
func (d Dashboard) Gain() decimal.Decimal {
	return d.TotalValue.Sub(d.TotalPaid)
}

// Summarize computes dashboard figures from a snapshot.
func Summarize(s Snapshot) Dashboard {
	d := Dashboard{
		TotalCards:     len(s.Cards),
		TotalTricks:    len(s.MagicTricks),
		TotalWishlist:  len(s.Wishlist),
		ByStatus:       make(map[OpeningStatus]int),
		ByManufacturer: make(map[string]int),
		ByRating:       make(map[string]int),
		ByGenre:        make(map[string]int),
		CardPrices:     make([]float64, 0, len(s.Cards)),
		TrickPoints:    make([]TrickPoint, 0, len(s.MagicTricks)),
	}
	for _, c := range s.Cards {
		d.TotalValue = d.TotalValue.Add(decimal.NewFromFloat(c.CurrentPrice))
		d.TotalPaid = d.TotalPaid.Add(decimal.NewFromFloat(c.PurchasePrice))
		d.ByStatus[c.OpeningStatus]++
		d.ByManufacturer[c.Manufacturer]++
		d.ByRating[fmt.Sprintf("%.1f", c.DesignRating)]++
		d.CardPrices = append(d.CardPrices, c.CurrentPrice)
	}
	for _, w := range s.Wishlist {
		d.WishlistTotal = d.WishlistTotal.Add(decimal.NewFromFloat(w.Price))
	}
	for _, m := range s.MagicTricks {
		d.ByGenre[m.Genre]++
		d.TrickPoints = append(d.TrickPoints, TrickPoint{Name: m.Name, Difficulty: m.DifficultyRating, Amazement: m.AmazementRating})
	}
	return d
}
