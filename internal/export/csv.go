package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// Writer renders reports in every supported format.
type Writer struct {
	formatter Formatter
}

// NewWriter creates a Writer that prefixes money with currency.
func NewWriter(currency string) *Writer {
	return &Writer{formatter: Formatter{Currency: currency}}
}

// Write renders report in the given format.
func (w *Writer) Write(out io.Writer, format Format, report *domain.Report) error {
	switch format {
	case FormatMain:
		return w.WriteMainAnalysis(out, report)
	case FormatFull:
		return w.WriteFullReport(out, report)
	case FormatXLSX:
		return w.WriteWorkbook(out, report)
	}
	_, err := ParseFormat(string(format))
	return err
}

// WriteMainAnalysis writes the summary-only CSV: both metric views, one
// figure per line.
func (w *Writer) WriteMainAnalysis(out io.Writer, report *domain.Report) error {
	f := w.formatter
	raw, over := report.Raw, report.Over

	records := [][]string{
		{"Party Name", report.Party},
		{},
		{"Sauda bacha hai usse barabar"},
		{"Total Sauda", f.Number(raw.TotalCommitted)},
		{"Total Delivery", f.Number(raw.TotalDelivered)},
		{"Remaining", f.Number(raw.SimpleRemaining)},
		{"Net Pos", f.Position(raw.NetQuantity)},
		{"Rate", f.Money(raw.NetRate)},
		{"Impact", f.Impact(raw.NetMoney)},
		{},
		{"Over-Deliveries Summary"},
		{"Total Over", f.Number(over.TotalOverQuantity)},
		{"Net Pos", f.Position(over.NetQuantity)},
		{"Rate", f.Money(over.NetRate)},
		{"Impact", f.Impact(over.NetMoney)},
	}
	return writeAll(out, records)
}

// WriteFullReport writes the detailed CSV: both input ledgers, every
// commitment after allocation, every over-delivery, the rate ladder and
// both summaries.
func (w *Writer) WriteFullReport(out io.Writer, report *domain.Report) error {
	f := w.formatter
	var records [][]string
	section := func(title string, header ...string) {
		if len(records) > 0 {
			records = append(records, []string{})
		}
		records = append(records, []string{title}, header)
	}

	records = append(records, []string{"Party Name", report.Party})

	section("Sauda Entries", "Packets", "Rate", "Date")
	records = append(records, w.entryRows(report.Sauda)...)

	section("Delivery Entries", "Packets", "Rate", "Date")
	records = append(records, w.entryRows(report.Deliveries)...)

	section("Remaining Contracts", "Orig", "Rate", "Date", "Remaining", "LastDelivery")
	for _, c := range report.Commitments {
		records = append(records, []string{
			f.Number(c.Quantity),
			f.Number(c.Rate),
			c.Date.Format(domain.DateLayout),
			f.Number(c.Remaining),
			domain.FormatDate(c.LastDeliveryDate),
		})
	}

	section("Over Deliveries", "Qty", "Rate", "Date")
	for _, o := range report.OverDeliveries {
		records = append(records, []string{
			f.Number(o.Quantity),
			f.Number(o.Rate),
			o.Date.Format(domain.DateLayout),
		})
	}

	section("Rate Ladder", "Rate", "Committed", "Delivered", "Matched", "Remaining", "Over")
	records = append(records, w.levelRows(report.Levels)...)

	raw := report.Raw
	section("Sauda bacha hai usse barabar", "Total Sauda", "Total Delivery", "Remaining", "Net Pos", "Rate", "Impact")
	records = append(records, []string{
		f.Number(raw.TotalCommitted),
		f.Number(raw.TotalDelivered),
		f.Number(raw.SimpleRemaining),
		f.Position(raw.NetQuantity),
		f.Money(raw.NetRate),
		f.Impact(raw.NetMoney),
	})

	over := report.Over
	section("Koi sauda nahi bacha", "Total Over", "Net Pos", "Rate", "Impact")
	records = append(records, []string{
		f.Number(over.TotalOverQuantity),
		f.Position(over.NetQuantity),
		f.Money(over.NetRate),
		f.Impact(over.NetMoney),
	})

	if len(report.Rejected) > 0 {
		section("Rejected Entries", "Ledger", "Row", "Reason")
		records = append(records, rejectedRows(report.Rejected)...)
	}

	return writeAll(out, records)
}

func (w *Writer) entryRows(entries []domain.Entry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{w.formatter.Number(e.Quantity), w.formatter.Number(e.Rate), e.Date.Format(domain.DateLayout)}
	}
	return rows
}

func (w *Writer) levelRows(levels []domain.RateLevel) [][]string {
	rows := make([][]string, len(levels))
	for i, l := range levels {
		rows[i] = []string{
			w.formatter.Number(l.Rate),
			w.formatter.Number(l.Committed),
			w.formatter.Number(l.Delivered),
			w.formatter.Number(l.Matched),
			w.formatter.Number(l.Remaining),
			w.formatter.Number(l.OverDelivered),
		}
	}
	return rows
}

func rejectedRows(rejected []domain.RejectedEntry) [][]string {
	rows := make([][]string, len(rejected))
	for i, r := range rejected {
		rows[i] = []string{string(r.Kind), strconv.Itoa(r.Row), r.Reason}
	}
	return rows
}

func writeAll(out io.Writer, records [][]string) error {
	cw := csv.NewWriter(out)
	// Empty records become blank separator lines.
	for _, rec := range records {
		if len(rec) == 0 {
			rec = []string{""}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
