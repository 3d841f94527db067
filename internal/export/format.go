// Package export renders reconciliation reports as CSV and XLSX files.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// Format names an export layout.
type Format string

const (
	FormatMain Format = "main"
	FormatFull Format = "full"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatMain, FormatFull, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q, must be one of: main, full, xlsx", domain.ErrUnknownExportFormat, s)
}

// Filename returns the download name for the format.
func (f Format) Filename() string {
	switch f {
	case FormatMain:
		return "main_analysis.csv"
	case FormatXLSX:
		return "full_detailed_report.xlsx"
	}
	return "full_detailed_report.csv"
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Formatter renders report figures as display text.
type Formatter struct {
	Currency string
}

// Number renders d with exactly two decimal places.
func (f Formatter) Number(d decimal.Decimal) string {
	return d.StringFixed(domain.Places)
}

// Money renders d with the currency prefix.
func (f Formatter) Money(d decimal.Decimal) string {
	return f.Currency + f.Number(d)
}

// Position renders a net quantity with its buy/sell verdict,
// e.g. "12.00 pkts → Sell".
func (f Formatter) Position(netQuantity decimal.Decimal) string {
	return withVerdict(f.Number(netQuantity)+" pkts", string(domain.PositionOf(netQuantity)))
}

// Impact renders a net monetary value with its profit/loss verdict,
// e.g. "₹12.00 → Profit".
func (f Formatter) Impact(netMoney decimal.Decimal) string {
	return withVerdict(f.Money(netMoney), string(domain.OutcomeOf(netMoney)))
}

func withVerdict(value, verdict string) string {
	if verdict == "" {
		return value
	}
	return value + " → " + verdict
}
