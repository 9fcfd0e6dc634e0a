package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/deckhand/pkg/core"
	"github.com/aretw0/deckhand/pkg/rates"
)

var wishlistCmd = &cobra.Command{
	Use:     "wishlist",
	Aliases: []string{"wish"},
	Short:   "Manage the wishlist",
}

type wishFlags struct {
	name, itemType, website, notes, added string
	price, priority                       float64
}

func (f *wishFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Item name")
	fs.StringVar(&f.itemType, "type", string(core.ItemCard), "Item type (card, magic-prop, book, dvd, other)")
	fs.Float64Var(&f.price, "price", 0, "Price in USD")
	fs.StringVar(&f.website, "website", "", "Where to buy it")
	fs.Float64Var(&f.priority, "priority", 3, "Priority, 1 to 5 in steps of 0.5")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.added, "added", "", "Added date (YYYY-MM-DD), edit only")
}

func (f *wishFlags) apply(fs *pflag.FlagSet, w *core.WishlistItem, all bool) error {
	set := func(name string) bool { return all || fs.Changed(name) }
	if set("name") {
		w.Name = f.name
	}
	if set("type") {
		t, err := core.ParseItemType(f.itemType)
		if err != nil {
			return err
		}
		w.Type = t
	}
	if set("price") {
		w.Price = f.price
	}
	if set("website") {
		w.Website = f.website
	}
	if set("priority") {
		w.Priority = f.priority
	}
	if set("notes") {
		w.Notes = f.notes
	}
	if fs.Changed("added") {
		w.AddedDate = core.Date(f.added)
		if !w.AddedDate.Valid() {
			return fmt.Errorf("invalid --added %q, want YYYY-MM-DD", f.added)
		}
	}
	return nil
}

var (
	wishAdd  wishFlags
	wishEdit wishFlags
)

var wishlistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a wishlist item",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		var w core.WishlistItem
		if err := wishAdd.apply(cmd.Flags(), &w, true); err != nil {
			fatal("Invalid item", err)
		}
		if err := w.Validate(); err != nil {
			fatal("Invalid item", err)
		}
		svc := openService(cfg)
		created, err := svc.Wishlist().Create(context.Background(), w)
		if err != nil {
			fatal("Failed to add item", err)
		}
		fmt.Printf("Added %s (%s)\n", created.Name, shortID(created.ID))
	},
}

var wishlistEditCmd = &cobra.Command{
	Use:   "edit <id|name|#n>",
	Short: "Change fields of a wishlist item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		ref := lookup(svc.Wishlist(), args[0])
		w, err := svc.Wishlist().Get(ref)
		if err != nil {
			fatal("Failed to find item", err)
		}
		if err := wishEdit.apply(cmd.Flags(), &w, false); err != nil {
			fatal("Invalid item", err)
		}
		if err := w.Validate(); err != nil {
			fatal("Invalid item", err)
		}
		updated, err := svc.Wishlist().Update(context.Background(), ref, w)
		if err != nil {
			fatal("Failed to update item", err)
		}
		fmt.Printf("Updated %s\n", updated.Name)
	},
}

var wishlistRmCmd = &cobra.Command{
	Use:     "rm <id|name|#n>",
	Aliases: []string{"delete"},
	Short:   "Remove a wishlist item",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		removed, err := svc.Wishlist().Remove(context.Background(), lookup(svc.Wishlist(), args[0]))
		if err != nil {
			fatal("Failed to remove item", err)
		}
		fmt.Printf("Removed %s\n", removed.Name)
	},
}

var (
	wishSearch   string
	wishType     string
	wishPriority string
	wishSort     string
	wishOrder    string
	wishJSON     bool
	wishKRW      bool
)

var wishlistListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List wishlist items",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		key, dir, err := sortOrder(wishSort, wishOrder)
		if err != nil {
			fatal("Invalid sort", err)
		}
		band, err := core.ParsePriorityBand(wishPriority)
		if err != nil {
			fatal("Invalid filter", err)
		}
		q := core.Query[core.WishlistItem]{
			Where: []core.Predicate[core.WishlistItem]{
				core.LabelContains[core.WishlistItem](wishSearch),
				core.WishlistTypeIs(wishType),
				core.WishlistPriorityIn(band),
			},
			Sort:      key,
			Direction: dir,
		}

		svc := openService(cfg)
		items := svc.Wishlist().Query(q)
		if wishJSON {
			printJSON(items)
			return
		}

		var rate float64
		if wishKRW {
			rate = newRateProvider(cfg).Rate(context.Background())
		}
		pos := positions(svc.Wishlist().All())

		total := 0.0
		w := newTable()
		fmt.Fprintln(w, "#\tNAME\tTYPE\tPRICE\tPRIORITY\tADDED")
		for _, it := range items {
			total += it.Price
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				pos[it.ID], it.Name, it.Type, price(it.Price, rate), priorityLabel(it.Priority), it.AddedDate)
		}
		w.Flush()
		fmt.Printf("%d of %d items, %s in total\n", len(items), svc.Wishlist().Len(), price(total, rate))
	},
}

var wishlistShowCmd = &cobra.Command{
	Use:   "show <id|name|#n>",
	Short: "Show one wishlist item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		it, err := svc.Wishlist().Get(lookup(svc.Wishlist(), args[0]))
		if err != nil {
			fatal("Failed to find item", err)
		}
		rate := newRateProvider(cfg).Rate(context.Background())

		w := newTable()
		fmt.Fprintf(w, "ID\t%s\n", it.ID)
		fmt.Fprintf(w, "Name\t%s\n", it.Name)
		fmt.Fprintf(w, "Type\t%s\n", it.Type)
		fmt.Fprintf(w, "Price\t%s\n", rates.Dual(it.Price, rate))
		fmt.Fprintf(w, "Priority\t%s (%s)\n", priorityLabel(it.Priority), core.BandOf(it.Priority))
		if it.Website != "" {
			fmt.Fprintf(w, "Website\t%s\n", it.Website)
		}
		if it.Notes != "" {
			fmt.Fprintf(w, "Notes\t%s\n", it.Notes)
		}
		fmt.Fprintf(w, "Added\t%s\n", it.AddedDate)
		w.Flush()
	},
}

func init() {
	wishAdd.register(wishlistAddCmd.Flags())
	wishEdit.register(wishlistEditCmd.Flags())

	f := wishlistListCmd.Flags()
	f.StringVarP(&wishSearch, "search", "s", "", "Only items whose name contains this text")
	f.StringVar(&wishType, "type", core.All, "Item type filter")
	f.StringVar(&wishPriority, "priority", core.All, "Priority band filter (high, medium, low, all)")
	f.StringVar(&wishSort, "sort", "rating", "Sort by name, price, rating (priority) or added")
	f.StringVar(&wishOrder, "order", "", "asc or desc (default: A-Z for names, highest first otherwise)")
	f.BoolVar(&wishJSON, "json", false, "Output JSON")
	f.BoolVar(&wishKRW, "krw", false, "Show prices in KRW too")

	wishlistCmd.AddCommand(wishlistAddCmd, wishlistEditCmd, wishlistRmCmd, wishlistListCmd, wishlistShowCmd)
	rootCmd.AddCommand(wishlistCmd)
}
