package service

import (
	"strings"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// ValidateEntries keeps the rows that can take part in a reconciliation and
// reports the rest. A row is kept when its quantity and rate are positive
// after rounding to two places and its date is a YYYY-MM-DD calendar date.
// Kept rows preserve their relative order, which decides FIFO filling.
func ValidateEntries(kind domain.EntryKind, rows []domain.RawEntry) ([]domain.Entry, []domain.RejectedEntry) {
	valid := make([]domain.Entry, 0, len(rows))
	var rejected []domain.RejectedEntry

	for i, row := range rows {
		e, reason := validateEntry(row)
		if reason != "" {
			rejected = append(rejected, domain.RejectedEntry{
				Kind:   kind,
				Row:    i + 1,
				Reason: reason,
			})
			continue
		}
		valid = append(valid, e)
	}
	return valid, rejected
}

func validateEntry(row domain.RawEntry) (domain.Entry, string) {
	qty := domain.Round(row.Quantity)
	if !qty.IsPositive() {
		return domain.Entry{}, "quantity must be > 0"
	}
	rate := domain.Round(row.Rate)
	if !rate.IsPositive() {
		return domain.Entry{}, "rate must be > 0"
	}
	if strings.TrimSpace(row.Date) == "" {
		return domain.Entry{}, "date is required"
	}
	date, err := domain.ParseDate(row.Date)
	if err != nil {
		return domain.Entry{}, "date must be YYYY-MM-DD"
	}
	return domain.Entry{Quantity: qty, Rate: rate, Date: date}, ""
}
