// Package tabular moves the card collection in and out of CSV files.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/deckhand/pkg/core"
)

// CardHeader is the column order written by ExportCards.
var CardHeader = []string{
	"id", "name", "purchase_price", "current_price", "manufacturer",
	"discontinued", "opening_status", "website", "design_rating", "finish",
	"design_style", "notes", "added_date",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCards writes cards as CSV with a header row.
func ExportCards(w io.Writer, cards []core.Card) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CardHeader); err != nil {
		return err
	}
	for _, c := range cards {
		row := []string{
			c.ID,
			c.Name,
			formatFloat(c.PurchasePrice),
			formatFloat(c.CurrentPrice),
			c.Manufacturer,
			strconv.FormatBool(c.Discontinued),
			string(c.OpeningStatus),
			c.Website,
			formatFloat(c.DesignRating),
			string(c.Finish),
			string(c.DesignStyle),
			c.Notes,
			c.AddedDate.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RowError reports the first row that could not be imported. Row counts
// the header as row 1.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ImportCards reads cards written by ExportCards or by a spreadsheet.
// Columns are matched by header name and unknown columns are ignored; only
// "name" is required. Blank opening_status, finish, design_style and
// design_rating cells take the core defaults, as a new card added from the
// command line does. Every row must produce a valid card, otherwise nothing
// is returned. Missing IDs and dates are left empty for the caller to assign.
func ImportCards(r io.Reader) ([]core.Card, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty, a header row is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("csv header has no name column")
	}

	cards := []core.Card{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		if isBlank(rec) {
			continue
		}
		card, err := parseCard(rowReader{cols: cols, rec: rec})
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func isBlank(rec []string) bool {
	return !slices.ContainsFunc(rec, func(s string) bool { return strings.TrimSpace(s) != "" })
}

type rowReader struct {
	cols map[string]int
	rec  []string
}

func (r rowReader) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

// or returns the cell for col, or def when it is blank or missing.
func (r rowReader) or(col, def string) string {
	if s := r.get(col); s != "" {
		return s
	}
	return def
}

func (r rowReader) number(col string) (float64, error) {
	return r.numberOr(col, 0)
}

func (r rowReader) numberOr(col string, def float64) (float64, error) {
	s := r.get(col)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", col, s)
	}
	return v, nil
}

func (r rowReader) flag(col string) (bool, error) {
	s := r.get(col)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not true or false", col, s)
	}
	return v, nil
}

func parseCard(r rowReader) (core.Card, error) {
	c := core.Card{
		ID:           r.get("id"),
		Name:         r.get("name"),
		Manufacturer: r.get("manufacturer"),
		Website:      r.get("website"),
		Notes:        r.get("notes"),
		AddedDate:    core.Date(r.get("added_date")),
	}

	var err error
	if c.PurchasePrice, err = r.number("purchase_price"); err != nil {
		return c, err
	}
	if c.CurrentPrice, err = r.number("current_price"); err != nil {
		return c, err
	}
	if c.DesignRating, err = r.numberOr("design_rating", core.DefaultDesignRating); err != nil {
		return c, err
	}
	if c.Discontinued, err = r.flag("discontinued"); err != nil {
		return c, err
	}
	if c.OpeningStatus, err = core.ParseOpeningStatus(r.or("opening_status", string(core.DefaultOpeningStatus))); err != nil {
		return c, err
	}
	if c.Finish, err = core.ParseFinish(r.or("finish", string(core.DefaultFinish))); err != nil {
		return c, err
	}
	if c.DesignStyle, err = core.ParseDesignStyle(r.or("design_style", string(core.DefaultDesignStyle))); err != nil {
		return c, err
	}
	if c.AddedDate != "" && !c.AddedDate.Valid() {
		return c, fmt.Errorf("added_date: %q is not a YYYY-MM-DD date", c.AddedDate)
	}
	return c, c.Validate()
}
