package deckhand_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/deckhand"
	"github.com/aretw0/deckhand/pkg/core"
)

// Example_basic opens a collection, adds two decks and lists them by price.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "deckhand-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := deckhand.New(filepath.Join(tmpDir, "collection.json"), deckhand.WithForceTemp(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	decks := []deckhand.Card{
		{Name: "Bicycle Rider Back", PurchasePrice: 5, CurrentPrice: 8, Manufacturer: "Bicycle",
			OpeningStatus: core.StatusUnopened, DesignRating: 4, Finish: core.FinishAirCushion, DesignStyle: core.StyleClassic},
		{Name: "Monarchs", PurchasePrice: 12, CurrentPrice: 15, Manufacturer: "Theory11",
			OpeningStatus: core.StatusOpened, DesignRating: 5, Finish: core.FinishLinen, DesignStyle: core.StyleVintage},
	}
	for _, d := range decks {
		if _, err := svc.Cards().Create(ctx, d); err != nil {
			log.Fatal(err)
		}
	}

	byPrice := svc.Cards().Query(core.Query[core.Card]{Sort: core.SortPrice, Direction: core.Descending})
	for _, c := range byPrice {
		g := c.Gain()
		fmt.Printf("%s: $%.2f (+%s%%)\n", c.Name, c.CurrentPrice, g.Percent.StringFixed(0))
	}

	// Output:
	// Monarchs: $15.00 (+25%)
	// Bicycle Rider Back: $8.00 (+60%)
}
