package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/efreitasn/saudarecon/internal/domain"
	"github.com/efreitasn/saudarecon/internal/service"
)

func entry(qty, rate, day string) domain.Entry {
	d, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return domain.Entry{
		Quantity: decimal.RequireFromString(qty),
		Rate:     decimal.RequireFromString(rate),
		Date:     d,
	}
}

func testReport() *domain.Report {
	r := service.Build(
		[]domain.Entry{
			entry("5", "10", "2024-01-01"),
			entry("4", "20", "2024-01-02"),
		},
		[]domain.Entry{
			entry("8", "10", "2024-01-05"),
		},
	)
	r.ID = "report-1"
	r.Party = "Ramesh Traders"
	r.Rejected = []domain.RejectedEntry{{Kind: domain.EntryKindDelivery, Row: 2, Reason: "rate must be > 0"}}
	return r
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"main", "full", "xlsx"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnknownExportFormat)
}

func TestFormat_FilenameAndContentType(t *testing.T) {
	assert.Equal(t, "main_analysis.csv", FormatMain.Filename())
	assert.Equal(t, "full_detailed_report.csv", FormatFull.Filename())
	assert.Equal(t, "full_detailed_report.xlsx", FormatXLSX.Filename())
	assert.True(t, strings.HasPrefix(FormatMain.ContentType(), "text/csv"))
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestFormatter(t *testing.T) {
	f := Formatter{Currency: "₹"}

	assert.Equal(t, "12.00", f.Number(decimal.NewFromInt(12)))
	assert.Equal(t, "₹-3.50", f.Money(decimal.RequireFromString("-3.5")))
	assert.Equal(t, "12.00 pkts → Sell", f.Position(decimal.NewFromInt(12)))
	assert.Equal(t, "-1.25 pkts → Buy", f.Position(decimal.RequireFromString("-1.25")))
	assert.Equal(t, "0.00 pkts", f.Position(decimal.Zero))
	assert.Equal(t, "₹9.00 → Profit", f.Impact(decimal.NewFromInt(9)))
	assert.Equal(t, "₹-9.00 → Loss", f.Impact(decimal.NewFromInt(-9)))
	assert.Equal(t, "₹0.00", f.Impact(decimal.Zero))
}

func readCSV(t *testing.T, s string) [][]string {
	t.Helper()
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteMainAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter("₹").WriteMainAnalysis(&buf, testReport()))

	records := readCSV(t, buf.String())

	// committed 9 (value 5×0.3×10 + 4×0.3×20 = 15 + 24 = 39),
	// delivered 8 (value 24); over-delivery 3 @ 10 (value 9).
	want := [][]string{
		{"Party Name", "Ramesh Traders"},
		{"Sauda bacha hai usse barabar"},
		{"Total Sauda", "9.00"},
		{"Total Delivery", "8.00"},
		{"Remaining", "1.00"},
		{"Net Pos", "-1.00 pkts → Buy"},
		{"Rate", "₹50.00"},
		{"Impact", "₹-15.00 → Loss"},
		{"Over-Deliveries Summary"},
		{"Total Over", "3.00"},
		{"Net Pos", "3.00 pkts → Sell"},
		{"Rate", "₹10.00"},
		{"Impact", "₹9.00 → Profit"},
	}
	assert.Equal(t, want, records)
	assert.Contains(t, buf.String(), "Ramesh Traders\n\nSauda bacha hai usse barabar\n")
}

func TestWriteFullReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter("₹").WriteFullReport(&buf, testReport()))

	out := buf.String()
	assert.Contains(t, out, "Remaining Contracts\nOrig,Rate,Date,Remaining,LastDelivery\n"+
		"5.00,10.00,2024-01-01,0.00,2024-01-05\n"+
		"4.00,20.00,2024-01-02,4.00,\n")
	assert.Contains(t, out, "Over Deliveries\nQty,Rate,Date\n3.00,10.00,2024-01-05\n")
	assert.Contains(t, out, "Rate Ladder\nRate,Committed,Delivered,Matched,Remaining,Over\n"+
		"10.00,5.00,8.00,5.00,0.00,3.00\n"+
		"20.00,4.00,0.00,0.00,4.00,0.00\n")
	assert.Contains(t, out, "Koi sauda nahi bacha\nTotal Over,Net Pos,Rate,Impact\n3.00,3.00 pkts → Sell,₹10.00,₹9.00 → Profit\n")
	assert.Contains(t, out, "Rejected Entries\nLedger,Row,Reason\ndelivery,2,rate must be > 0\n")

	records := readCSV(t, out)
	assert.Equal(t, []string{"Party Name", "Ramesh Traders"}, records[0])
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter("₹").WriteWorkbook(&buf, testReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Sauda", "Deliveries", "Contracts", "OverDeliveries", "Rates"}, f.GetSheetList())

	party, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Traders", party)

	verdict, err := f.GetCellValue("Summary", "C6")
	require.NoError(t, err)
	assert.Equal(t, "Buy", verdict)

	rows, err := f.GetRows("Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Orig", "Rate", "Date", "Remaining", "LastDelivery"}, rows[0])
	assert.Equal(t, "2024-01-05", rows[1][4])
}

func TestWriter_Write_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter("₹").Write(&buf, Format("pdf"), testReport())
	assert.ErrorIs(t, err, domain.ErrUnknownExportFormat)
}
