package export

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/efreitasn/saudarecon/internal/domain"
)

type worksheet struct {
	name   string
	header []any
	rows   [][]any
}

// WriteWorkbook writes the full report as an XLSX workbook with one sheet
// per section. Figures are stored as numbers so they stay usable in
// formulas; verdicts go in their own column.
func (w *Writer) WriteWorkbook(out io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []worksheet{
		w.summarySheet(report),
		entrySheet("Sauda", report.Sauda),
		entrySheet("Deliveries", report.Deliveries),
		contractSheet(report.Commitments),
		overSheet(report.OverDeliveries),
		rateSheet(report.Levels),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeSheet(f, s); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	_, err := f.WriteTo(out)
	return err
}

func writeSheet(f *excelize.File, s worksheet) error {
	rows := append([][]any{s.header}, s.rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func num(d decimal.Decimal) float64 {
	return domain.Round(d).InexactFloat64()
}

func (w *Writer) summarySheet(report *domain.Report) worksheet {
	raw, over := report.Raw, report.Over
	cur := w.formatter.Currency
	return worksheet{
		name:   "Summary",
		header: []any{"Figure", "Value", "Verdict"},
		rows: [][]any{
			{"Party Name", report.Party},
			{"Total Sauda", num(raw.TotalCommitted)},
			{"Total Delivery", num(raw.TotalDelivered)},
			{"Remaining", num(raw.SimpleRemaining)},
			{"Net Pos (pkts)", num(raw.NetQuantity), string(raw.Position())},
			{"Rate (" + cur + ")", num(raw.NetRate)},
			{"Impact (" + cur + ")", num(raw.NetMoney), string(raw.Outcome())},
			{"Total Over", num(over.TotalOverQuantity)},
			{"Over Net Pos (pkts)", num(over.NetQuantity), string(over.Position())},
			{"Over Rate (" + cur + ")", num(over.NetRate)},
			{"Over Impact (" + cur + ")", num(over.NetMoney), string(over.Outcome())},
		},
	}
}

func entrySheet(name string, entries []domain.Entry) worksheet {
	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{num(e.Quantity), num(e.Rate), e.Date.Format(domain.DateLayout)}
	}
	return worksheet{name: name, header: []any{"Packets", "Rate", "Date"}, rows: rows}
}

func contractSheet(commitments []domain.Commitment) worksheet {
	rows := make([][]any, len(commitments))
	for i, c := range commitments {
		rows[i] = []any{
			num(c.Quantity),
			num(c.Rate),
			c.Date.Format(domain.DateLayout),
			num(c.Remaining),
			domain.FormatDate(c.LastDeliveryDate),
		}
	}
	return worksheet{
		name:   "Contracts",
		header: []any{"Orig", "Rate", "Date", "Remaining", "LastDelivery"},
		rows:   rows,
	}
}

func overSheet(over []domain.OverDelivery) worksheet {
	rows := make([][]any, len(over))
	for i, o := range over {
		rows[i] = []any{num(o.Quantity), num(o.Rate), o.Date.Format(domain.DateLayout)}
	}
	return worksheet{name: "OverDeliveries", header: []any{"Qty", "Rate", "Date"}, rows: rows}
}

func rateSheet(levels []domain.RateLevel) worksheet {
	rows := make([][]any, len(levels))
	for i, l := range levels {
		rows[i] = []any{
			num(l.Rate),
			num(l.Committed),
			num(l.Delivered),
			num(l.Matched),
			num(l.Remaining),
			num(l.OverDelivered),
		}
	}
	return worksheet{
		name:   "Rates",
		header: []any{"Rate", "Committed", "Delivered", "Matched", "Remaining", "Over"},
		rows:   rows,
	}
}
