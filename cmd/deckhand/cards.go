package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/deckhand/pkg/core"
	"github.com/aretw0/deckhand/pkg/rates"
	"github.com/aretw0/deckhand/pkg/tabular"
)

var cardsCmd = &cobra.Command{
	Use:     "cards",
	Aliases: []string{"card"},
	Short:   "Manage the playing-card collection",
}

type cardFlags struct {
	name, manufacturer, status, website, finish, style, notes, added string
	purchase, current, rating                                        float64
	discontinued                                                     bool
}

func (f *cardFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Deck name")
	fs.Float64Var(&f.purchase, "purchase-price", 0, "Purchase price in USD")
	fs.Float64Var(&f.current, "current-price", 0, "Current price in USD")
	fs.StringVar(&f.manufacturer, "manufacturer", "", "Manufacturer")
	fs.BoolVar(&f.discontinued, "discontinued", false, "Deck is out of print")
	fs.StringVar(&f.status, "status", string(core.DefaultOpeningStatus), "Opening status (unopened, opened, new-deck)")
	fs.StringVar(&f.website, "website", "", "Product page URL")
	fs.Float64Var(&f.rating, "rating", core.DefaultDesignRating, "Design rating, 1 to 5 in steps of 0.5")
	fs.StringVar(&f.finish, "finish", string(core.DefaultFinish), "Finish (standard, air-cushion, linen, smooth, embossed, plastic)")
	fs.StringVar(&f.style, "style", string(core.DefaultDesignStyle), "Design style (classic, modern, vintage, minimalist, artistic, custom)")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.added, "added", "", "Added date (YYYY-MM-DD), edit only")
}

// apply copies the flags set on the command line onto c. On create every
// flag counts, so defaults apply.
func (f *cardFlags) apply(fs *pflag.FlagSet, c *core.Card, all bool) error {
	set := func(name string) bool { return all || fs.Changed(name) }
	var err error
	if set("name") {
		c.Name = f.name
	}
	if set("purchase-price") {
		c.PurchasePrice = f.purchase
	}
	if set("current-price") {
		c.CurrentPrice = f.current
	}
	if set("manufacturer") {
		c.Manufacturer = f.manufacturer
	}
	if set("discontinued") {
		c.Discontinued = f.discontinued
	}
	if set("status") {
		if c.OpeningStatus, err = core.ParseOpeningStatus(f.status); err != nil {
			return err
		}
	}
	if set("website") {
		c.Website = f.website
	}
	if set("rating") {
		c.DesignRating = f.rating
	}
	if set("finish") {
		if c.Finish, err = core.ParseFinish(f.finish); err != nil {
			return err
		}
	}
	if set("style") {
		if c.DesignStyle, err = core.ParseDesignStyle(f.style); err != nil {
			return err
		}
	}
	if set("notes") {
		c.Notes = f.notes
	}
	if fs.Changed("added") {
		c.AddedDate = core.Date(f.added)
		if !c.AddedDate.Valid() {
			return fmt.Errorf("invalid --added %q, want YYYY-MM-DD", f.added)
		}
	}
	return nil
}

var (
	cardAdd  cardFlags
	cardEdit cardFlags
)

var cardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a deck",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		var c core.Card
		if err := cardAdd.apply(cmd.Flags(), &c, true); err != nil {
			fatal("Invalid card", err)
		}
		if err := c.Validate(); err != nil {
			fatal("Invalid card", err)
		}

		svc := openService(cfg)
		ctx := context.Background()
		created, err := svc.Cards().Create(ctx, c)
		if err != nil {
			fatal("Failed to add card", err)
		}
		if c.Manufacturer != "" {
			if _, err := svc.AddVocabulary(ctx, core.Manufacturers, c.Manufacturer); err != nil {
				fatal("Failed to record manufacturer", err)
			}
		}
		fmt.Printf("Added %s (%s)\n", created.Name, shortID(created.ID))
	},
}

var cardsEditCmd = &cobra.Command{
	Use:   "edit <id|name|#n>",
	Short: "Change fields of a deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		ref := lookup(svc.Cards(), args[0])
		c, err := svc.Cards().Get(ref)
		if err != nil {
			fatal("Failed to find card", err)
		}
		if err := cardEdit.apply(cmd.Flags(), &c, false); err != nil {
			fatal("Invalid card", err)
		}
		if err := c.Validate(); err != nil {
			fatal("Invalid card", err)
		}
		updated, err := svc.Cards().Update(context.Background(), ref, c)
		if err != nil {
			fatal("Failed to update card", err)
		}
		fmt.Printf("Updated %s\n", updated.Name)
	},
}

var cardsRmCmd = &cobra.Command{
	Use:     "rm <id|name|#n>",
	Aliases: []string{"delete"},
	Short:   "Remove a deck",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		removed, err := svc.Cards().Remove(context.Background(), lookup(svc.Cards(), args[0]))
		if err != nil {
			fatal("Failed to remove card", err)
		}
		fmt.Printf("Removed %s\n", removed.Name)
	},
}

var (
	cardSearch       string
	cardStatus       string
	cardManufacturer string
	cardOutOfPrint   string
	cardSort         string
	cardOrder        string
	cardJSON         bool
	cardKRW          bool
)

var cardsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List decks",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		key, dir, err := sortOrder(cardSort, cardOrder)
		if err != nil {
			fatal("Invalid sort", err)
		}
		q := core.Query[core.Card]{
			Where: []core.Predicate[core.Card]{
				core.LabelContains[core.Card](cardSearch),
				core.CardStatusIs(cardStatus),
				core.CardManufacturerIs(cardManufacturer),
			},
			Sort:      key,
			Direction: dir,
		}
		switch cardOutOfPrint {
		case "", core.All:
		case "yes":
			q.Where = append(q.Where, core.CardDiscontinued(true))
		case "no":
			q.Where = append(q.Where, core.CardDiscontinued(false))
		default:
			fatal("Invalid filter", fmt.Errorf("--discontinued must be yes, no or all"))
		}

		svc := openService(cfg)
		cards := svc.Cards().Query(q)
		if cardJSON {
			printJSON(cards)
			return
		}

		var rate float64
		if cardKRW {
			rate = newRateProvider(cfg).Rate(context.Background())
		}
		pos := positions(svc.Cards().All())

		w := newTable()
		fmt.Fprintln(w, "#\tNAME\tMANUFACTURER\tSTATUS\tPRICE\tGAIN\tRATING\tFINISH")
		for _, c := range cards {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
				pos[c.ID], c.Name, c.Manufacturer, statusLabel(c.OpeningStatus),
				price(c.CurrentPrice, rate), gainLabel(c.Gain()), c.DesignRating, c.Finish)
		}
		w.Flush()
		fmt.Printf("%d of %d decks\n", len(cards), svc.Cards().Len())
	},
}

// positions maps record IDs to their 1-based insertion position, the
// number accepted as "#n".
func positions[T core.Record[T]](all []T) map[string]int {
	pos := make(map[string]int, len(all))
	for i, r := range all {
		pos[r.RecordID()] = i + 1
	}
	return pos
}

var cardsExportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Export decks as CSV (to stdout without a file)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				fatal("Failed to create file", err)
			}
			defer f.Close()
			out = f
		}
		if err := tabular.ExportCards(out, svc.Cards().All()); err != nil {
			fatal("Failed to export cards", err)
		}
	},
}

var cardsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace all decks with the contents of a CSV file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		f, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open file", err)
		}
		defer f.Close()

		cards, err := tabular.ImportCards(f)
		if err != nil {
			fatal("Failed to import cards", err)
		}

		svc := openService(cfg)
		ctx := context.Background()
		if err := svc.ReplaceCards(ctx, cards); err != nil {
			fatal("Failed to save imported cards", err)
		}
		for _, c := range cards {
			if c.Manufacturer == "" {
				continue
			}
			if _, err := svc.AddVocabulary(ctx, core.Manufacturers, c.Manufacturer); err != nil {
				fatal("Failed to record manufacturer", err)
			}
		}
		fmt.Printf("Imported %d decks\n", len(cards))
	},
}

var cardsShowCmd = &cobra.Command{
	Use:   "show <id|name|#n>",
	Short: "Show one deck",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		c, err := svc.Cards().Get(lookup(svc.Cards(), args[0]))
		if err != nil {
			fatal("Failed to find card", err)
		}
		rate := newRateProvider(cfg).Rate(context.Background())

		w := newTable()
		fmt.Fprintf(w, "ID\t%s\n", c.ID)
		fmt.Fprintf(w, "Name\t%s\n", c.Name)
		fmt.Fprintf(w, "Manufacturer\t%s\n", c.Manufacturer)
		fmt.Fprintf(w, "Paid\t%s\n", rates.Dual(c.PurchasePrice, rate))
		fmt.Fprintf(w, "Worth\t%s\n", rates.Dual(c.CurrentPrice, rate))
		fmt.Fprintf(w, "Gain\t%s\n", gainLabel(c.Gain()))
		fmt.Fprintf(w, "Status\t%s\n", statusLabel(c.OpeningStatus))
		fmt.Fprintf(w, "Discontinued\t%t\n", c.Discontinued)
		fmt.Fprintf(w, "Design\t%.1f, %s, %s\n", c.DesignRating, c.DesignStyle, c.Finish)
		if c.Website != "" {
			fmt.Fprintf(w, "Website\t%s\n", c.Website)
		}
		if c.Notes != "" {
			fmt.Fprintf(w, "Notes\t%s\n", c.Notes)
		}
		fmt.Fprintf(w, "Added\t%s\n", c.AddedDate)
		w.Flush()
	},
}

func init() {
	cardAdd.register(cardsAddCmd.Flags())
	cardEdit.register(cardsEditCmd.Flags())

	f := cardsListCmd.Flags()
	f.StringVarP(&cardSearch, "search", "s", "", "Only decks whose name contains this text")
	f.StringVar(&cardStatus, "status", core.All, "Opening status filter")
	f.StringVar(&cardManufacturer, "manufacturer", core.All, "Manufacturer filter")
	f.StringVar(&cardOutOfPrint, "discontinued", core.All, "Discontinued filter (yes, no, all)")
	f.StringVar(&cardSort, "sort", "name", "Sort by name, price, rating or added")
	f.StringVar(&cardOrder, "order", "", "asc or desc (default: A-Z for names, highest first otherwise)")
	f.BoolVar(&cardJSON, "json", false, "Output JSON")
	f.BoolVar(&cardKRW, "krw", false, "Show prices in KRW too")

	cardsCmd.AddCommand(cardsAddCmd, cardsEditCmd, cardsRmCmd, cardsListCmd, cardsShowCmd, cardsExportCmd, cardsImportCmd)
	rootCmd.AddCommand(cardsCmd)
}
