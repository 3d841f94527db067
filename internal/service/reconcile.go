package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/saudarecon/internal/domain"
	"github.com/efreitasn/saudarecon/internal/engine"
	"github.com/efreitasn/saudarecon/internal/store"
)

const maxPartyLength = 128

// ReconcileRequest represents the input for one reconciliation run.
type ReconcileRequest struct {
	Party   string
	Sauda   []domain.RawEntry
	Returns []domain.RawEntry
}

// ReconcileService validates ledgers, runs the allocation engine and the
// metrics calculators, and keeps the resulting reports for later export.
type ReconcileService struct {
	store        *store.ReportStore
	maxEntries   int
	defaultParty string
	logger       *slog.Logger
	now          func() time.Time
}

// NewReconcileService creates a new ReconcileService. A non-positive
// maxEntries disables the size check.
func NewReconcileService(
	reportStore *store.ReportStore,
	maxEntries int,
	defaultParty string,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		store:        reportStore,
		maxEntries:   maxEntries,
		defaultParty: defaultParty,
		logger:       logger,
		now:          time.Now,
	}
}

// Reconcile validates both ledgers, reconciles the valid rows and stores
// the report. Invalid rows are listed in Report.Rejected, not returned as
// errors.
func (s *ReconcileService) Reconcile(req ReconcileRequest) (*domain.Report, error) {
	if s.maxEntries > 0 && len(req.Sauda)+len(req.Returns) > s.maxEntries {
		return nil, fmt.Errorf("%w: %d rows submitted, limit is %d",
			domain.ErrTooManyEntries, len(req.Sauda)+len(req.Returns), s.maxEntries)
	}

	party := strings.TrimSpace(req.Party)
	if party == "" {
		party = s.defaultParty
	}
	if len(party) > maxPartyLength {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("party must be at most %d characters", maxPartyLength),
		}
	}

	sauda, rejectedSauda := ValidateEntries(domain.EntryKindSauda, req.Sauda)
	deliveries, rejectedReturns := ValidateEntries(domain.EntryKindDelivery, req.Returns)

	report := Build(sauda, deliveries)
	report.ID = uuid.New().String()
	report.Party = party
	report.CreatedAt = s.now()
	report.Rejected = append(rejectedSauda, rejectedReturns...)

	if len(report.Rejected) > 0 {
		s.logger.Warn("entries rejected",
			slog.String("report_id", report.ID),
			slog.Int("sauda_rejected", len(rejectedSauda)),
			slog.Int("returns_rejected", len(rejectedReturns)),
		)
	}

	for _, id := range s.store.Create(report) {
		s.logger.Debug("report evicted", slog.String("report_id", id))
	}

	s.logger.Debug("reconciled",
		slog.String("report_id", report.ID),
		slog.String("party", report.Party),
		slog.Int("sauda", len(sauda)),
		slog.Int("returns", len(deliveries)),
		slog.Int("over_deliveries", len(report.OverDeliveries)),
	)

	return report, nil
}

// Build reconciles already-validated ledgers into a report without
// identity or storage. One allocation feeds both the commitment view and
// the over-delivery metrics.
func Build(sauda, deliveries []domain.Entry) *domain.Report {
	alloc := engine.Allocate(sauda, deliveries)
	return &domain.Report{
		Sauda:          sauda,
		Deliveries:     deliveries,
		Commitments:    alloc.Commitments,
		OverDeliveries: alloc.OverDeliveries,
		Levels:         alloc.Levels,
		Raw:            engine.RawMetrics(sauda, deliveries),
		Over:           engine.SummarizeOverDeliveries(alloc.OverDeliveries),
	}
}

// GetReport retrieves a stored report by ID.
func (s *ReconcileService) GetReport(id string) (*domain.Report, error) {
	return s.store.Get(id)
}

// ListReports returns a page of stored reports, newest first, optionally
// filtered by party.
func (s *ReconcileService) ListReports(party string, page, limit int) ([]*domain.Report, int, error) {
	if page < 1 {
		return nil, 0, &domain.ValidationError{
			Message: "page must be >= 1",
		}
	}
	if limit < 1 || limit > 100 {
		return nil, 0, &domain.ValidationError{
			Message: "limit must be between 1 and 100",
		}
	}

	reports, total := s.store.List(party, page, limit)
	return reports, total, nil
}
