package store

import (
	"sync"
	"time"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// ReportStore is a thread-safe in-memory store for reconciliation reports,
// keyed by report ID with a secondary creation-ordered index. It holds at
// most maxReports entries; inserting beyond that evicts the oldest.
type ReportStore struct {
	mu         sync.RWMutex
	reports    map[string]*domain.Report
	order      []*domain.Report // creation order, oldest first
	maxReports int
}

// NewReportStore creates an empty ReportStore. A non-positive maxReports
// disables the cap.
func NewReportStore(maxReports int) *ReportStore {
	return &ReportStore{
		reports:    make(map[string]*domain.Report),
		maxReports: maxReports,
	}
}

// Create adds a report and returns the IDs of any reports evicted to stay
// within the cap.
func (s *ReportStore) Create(r *domain.Report) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.ID] = r
	s.order = append(s.order, r)

	var evicted []string
	for s.maxReports > 0 && len(s.order) > s.maxReports {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.reports, oldest.ID)
		evicted = append(evicted, oldest.ID)
	}
	return evicted
}

// Get retrieves a report by ID. It returns
// domain.ErrReportNotFound if the report does not exist.
func (s *ReportStore) Get(id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return r, nil
}

// List returns reports newest first. If party is non-empty, only reports
// for that party are included. Pagination is 1-based. Returns the page and
// the total count of matching reports (before pagination).
func (s *ReportStore) List(party string, page, limit int) ([]*domain.Report, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]*domain.Report, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		if party != "" && s.order[i].Party != party {
			continue
		}
		filtered = append(filtered, s.order[i])
	}

	total := len(filtered)

	start := (page - 1) * limit
	if start >= total {
		return []*domain.Report{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], total
}

// DeleteCreatedBefore removes every report created strictly before cutoff
// and returns their IDs, oldest first.
func (s *ReportStore) DeleteCreatedBefore(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	kept := s.order[:0]
	for _, r := range s.order {
		if r.CreatedAt.Before(cutoff) {
			ids = append(ids, r.ID)
			delete(s.reports, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	s.order = kept
	return ids
}

// Len returns the number of stored reports.
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}
