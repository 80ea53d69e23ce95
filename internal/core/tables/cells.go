package tables

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

// maxAmount bounds purchase amounts to what decimal(10,2) can hold.
var maxAmount = decimal.New(1, 8)

// cells reads typed fields out of a transformed row and collects every problem,
// so a rejected row is logged with all of its faults at once.
type cells struct {
	row  core.Row
	errs []string
}

func newCells(row core.Row) *cells {
	return &cells{row: row}
}

func (c *cells) fail(msg string) {
	c.errs = append(c.errs, msg)
}

// text returns a required trimmed string.
func (c *cells) text(col string) string {
	v := c.row.Get(col)
	s := strings.TrimSpace(v.Str())
	if v.IsMissing() || s == "" {
		c.fail(col + " is missing")
	}
	return s
}

// optText returns nil for missing or blank cells.
func (c *cells) optText(col string) *string {
	v := c.row.Get(col)
	if v.IsMissing() {
		return nil
	}
	s := strings.TrimSpace(v.Str())
	if s == "" {
		return nil
	}
	return &s
}

func (c *cells) toDate(v core.Value) (time.Time, bool) {
	if t, ok := v.Time(); ok {
		return t, true
	}
	if v.Kind() == core.KindText {
		return core.ParseDate(v.Str())
	}
	return time.Time{}, false
}

// date returns a required date.
func (c *cells) date(col string) time.Time {
	v := c.row.Get(col)
	if v.IsMissing() {
		c.fail(col + " is missing")
		return time.Time{}
	}
	t, ok := c.toDate(v)
	if !ok {
		c.fail("invalid date in " + col)
	}
	return t
}

// optDate returns nil for missing cells and records unparseable ones.
func (c *cells) optDate(col string) *time.Time {
	v := c.row.Get(col)
	if v.IsMissing() {
		return nil
	}
	t, ok := c.toDate(v)
	if !ok {
		c.fail("invalid date in " + col)
		return nil
	}
	return &t
}

// amount returns a required money value rounded to cents.
func (c *cells) amount(col string) decimal.Decimal {
	v := c.row.Get(col)
	if v.IsMissing() {
		c.fail(col + " is missing")
		return decimal.Zero
	}

	d, ok := v.Decimal()
	if !ok {
		if d, ok = core.ParseDecimal(v.Str()); !ok {
			c.fail("invalid number in " + col)
			return decimal.Zero
		}
	}

	d = d.Round(2)
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		c.fail(col + " is out of range")
	}
	return d
}

func (c *cells) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(c.errs, "; "))
}

// finish returns e when every field read cleanly and the struct validates.
func finish(c *cells, e core.Entity) (core.Entity, error) {
	if err := c.err(); err != nil {
		return nil, err
	}
	if err := entities.Validate(e); err != nil {
		return nil, err
	}
	return e, nil
}
