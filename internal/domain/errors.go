package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrReportNotFound      = errors.New("report_not_found")
	ErrTooManyEntries      = errors.New("too_many_entries")
	ErrUnknownExportFormat = errors.New("unknown_format")
	ErrEmptySheet          = errors.New("empty_sheet")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
