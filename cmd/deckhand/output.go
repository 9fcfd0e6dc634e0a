package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/aretw0/deckhand/pkg/core"
	"github.com/aretw0/deckhand/pkg/rates"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("Failed to encode JSON", err)
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// price renders a USD amount, with its KRW equivalent when rate is set.
func price(usd, rate float64) string {
	if rate <= 0 {
		return rates.FormatUSD(usd)
	}
	return rates.Dual(usd, rate)
}

func priorityLabel(p float64) string {
	text := fmt.Sprintf("%.1f", p)
	switch core.BandOf(p) {
	case core.BandHigh:
		return color.HiRedString(text)
	case core.BandMedium:
		return color.YellowString(text)
	}
	return color.GreenString(text)
}

func statusLabel(s core.OpeningStatus) string {
	switch s {
	case core.StatusUnopened:
		return color.CyanString(string(s))
	case core.StatusNewDeck:
		return color.HiWhiteString(string(s))
	}
	return string(s)
}

func gainLabel(g core.Gain) string {
	text := "$" + g.Delta.StringFixed(2)
	if g.HasPercent {
		text += " (" + g.Percent.StringFixed(1) + "%)"
	}
	switch {
	case g.Delta.IsPositive():
		return color.GreenString("+" + text)
	case g.Delta.IsNegative():
		return color.RedString(strings.Replace(text, "$-", "-$", 1))
	}
	return text
}

// sortOrder parses a --sort/--order pair. Without an explicit order, names
// sort A to Z and everything else highest first.
func sortOrder(key, order string) (core.SortKey, core.Direction, error) {
	k, err := core.ParseSortKey(key)
	if err != nil {
		return k, core.Ascending, err
	}
	switch strings.ToLower(order) {
	case "asc":
		return k, core.Ascending, nil
	case "desc":
		return k, core.Descending, nil
	case "":
		if k == core.SortLabel {
			return k, core.Ascending, nil
		}
		return k, core.Descending, nil
	}
	return k, core.Ascending, fmt.Errorf("invalid order %q, want asc or desc", order)
}

// lookup turns a command argument into a record reference: an ID if one
// matches, "#N" for the N-th record as listed, a name otherwise.
func lookup[T core.Record[T]](c *core.Collection[T], arg string) core.Ref {
	if _, err := c.Get(core.ByID(arg)); err == nil {
		return core.ByID(arg)
	}
	if n, ok := strings.CutPrefix(arg, "#"); ok {
		if i, err := strconv.Atoi(n); err == nil {
			return core.ByIndex(i - 1)
		}
	}
	return core.ByName(arg)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
