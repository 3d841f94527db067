// Package ledgerfile reads sauda and delivery ledgers from CSV or XLSX
// sheets into raw entries ready for validation.
package ledgerfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// Column aliases accepted in the header row, compared case-insensitively.
var (
	quantityColumns = []string{"quantity", "qty", "packets"}
	rateColumns     = []string{"rate"}
	dateColumns     = []string{"date"}
)

// Loader handles loading ledger sheets.
type Loader struct {
	// Sheet selects the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// NewLoader creates a new Loader reading the first worksheet of XLSX files.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads entries from a .csv or .xlsx file.
func (l *Loader) Load(filename string) ([]domain.RawEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %s: %w", filename, err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return l.ReadCSV(file)
	case ".xlsx":
		return l.ReadXLSX(file)
	default:
		return nil, fmt.Errorf("unsupported ledger file type %q", ext)
	}
}

// ReadCSV reads entries from CSV text.
func (l *Loader) ReadCSV(r io.Reader) ([]domain.RawEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger CSV: %w", err)
	}
	return parseRows(records)
}

// ReadXLSX reads entries from an XLSX workbook. Date cells stored as
// spreadsheet serial numbers are converted to calendar dates.
func (l *Loader) ReadXLSX(r io.Reader) ([]domain.RawEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger workbook: %w", err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	entries, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Date = serialToDate(entries[i].Date)
	}
	return entries, nil
}

// parseRows maps a header row plus data rows to raw entries. Blank rows are
// skipped; unparsable numbers become zero so validation can reject them.
func parseRows(rows [][]string) ([]domain.RawEntry, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptySheet
	}

	header := rows[0]
	qtyCol := findColumn(header, quantityColumns)
	rateCol := findColumn(header, rateColumns)
	dateCol := findColumn(header, dateColumns)
	if qtyCol < 0 || rateCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("ledger header must contain quantity, rate and date columns, got %v", header)
	}

	entries := make([]domain.RawEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		entries = append(entries, domain.RawEntry{
			Quantity: domain.ParseAmount(cell(row, qtyCol)),
			Rate:     domain.ParseAmount(cell(row, rateCol)),
			Date:     strings.TrimSpace(cell(row, dateCol)),
		})
	}
	return entries, nil
}

func findColumn(header []string, names []string) int {
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if col == name {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// serialToDate converts a spreadsheet date serial to YYYY-MM-DD and leaves
// any other text untouched.
func serialToDate(s string) string {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return t.Format(domain.DateLayout)
}
