package main

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/deckhand/pkg/core"
	"github.com/aretw0/deckhand/pkg/rates"
)

var dashboardJSON bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Summarize the whole collection",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		d := core.Summarize(svc.Snapshot())
		if dashboardJSON {
			printJSON(d)
			return
		}
		rate := newRateProvider(cfg).Rate(context.Background())

		heading := color.New(color.Bold, color.FgCyan).SprintFunc()
		fmt.Println(heading("Collection"))
		w := newTable()
		fmt.Fprintf(w, "Decks\t%d\n", d.TotalCards)
		fmt.Fprintf(w, "Tricks\t%d\n", d.TotalTricks)
		fmt.Fprintf(w, "Wishlist\t%d\n", d.TotalWishlist)
		fmt.Fprintf(w, "Value\t%s\n", rates.Dual(d.TotalValue.InexactFloat64(), rate))
		fmt.Fprintf(w, "Paid\t%s\n", rates.Dual(d.TotalPaid.InexactFloat64(), rate))
		fmt.Fprintf(w, "Gain\t%s\n", gainLabel(core.Gain{Delta: d.Gain()}))
		fmt.Fprintf(w, "Wishlist cost\t%s\n", rates.Dual(d.WishlistTotal.InexactFloat64(), rate))
		w.Flush()

		printCounts(heading("By status"), d.ByStatus)
		printCounts(heading("By manufacturer"), d.ByManufacturer)
		printCounts(heading("By design rating"), d.ByRating)
		printCounts(heading("Tricks by genre"), d.ByGenre)

		if len(d.TrickPoints) > 0 {
			fmt.Println(heading("Tricks, difficulty vs amazement"))
			w := newTable()
			for _, p := range d.TrickPoints {
				fmt.Fprintf(w, "  %s\t%d\t%d\n", p.Name, p.Difficulty, p.Amazement)
			}
			w.Flush()
		}
	},
}

// printCounts prints a histogram, largest count first.
func printCounts[K ~string](title string, counts map[K]int) {
	if len(counts) == 0 {
		return
	}
	keys := slices.SortedFunc(maps.Keys(counts), func(a, b K) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	fmt.Println(title)
	w := newTable()
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%d\t%s\n", k, counts[k], strings.Repeat("#", counts[k]))
	}
	w.Flush()
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(dashboardCmd)
}
