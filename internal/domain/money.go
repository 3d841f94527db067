package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Quantity, Rate and Money are all fixed-point decimals. The aliases only
// document intent at call sites.
type (
	Quantity = decimal.Decimal
	Rate     = decimal.Decimal
	Money    = decimal.Decimal
)

// Places is the precision every reported figure is rounded to.
const Places = 2

// DateLayout is the calendar-date format used by every ledger surface.
const DateLayout = "2006-01-02"

// PacketToQuintal converts packets to quintals. Rates are quoted per
// quintal, so monetary value is quantity × PacketToQuintal × rate.
var PacketToQuintal = decimal.RequireFromString("0.3")

// Round rounds d to Places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Value returns the unrounded monetary value of quantity packets at rate.
func Value(quantity Quantity, rate Rate) Money {
	return quantity.Mul(PacketToQuintal).Mul(rate)
}

// NetRate returns money / (quantity × PacketToQuintal) rounded to Places,
// or exactly zero when quantity is zero.
func NetRate(money Money, quantity Quantity) Rate {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return Round(money.Div(quantity.Mul(PacketToQuintal)))
}

// ParseAmount parses a numeric cell leniently. Blank or malformed text
// yields zero so that validation rejects the row instead of the whole
// sheet failing to load.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate formats t as YYYY-MM-DD, or "" for a nil date.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
