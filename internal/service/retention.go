package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/efreitasn/saudarecon/internal/store"
)

// RetentionManager periodically drops reports older than the configured
// TTL so the in-memory store stays bounded over long uptimes.
type RetentionManager struct {
	interval time.Duration
	ttl      time.Duration
	store    *store.ReportStore
	logger   *slog.Logger
}

// NewRetentionManager creates a new RetentionManager.
func NewRetentionManager(
	interval time.Duration,
	ttl time.Duration,
	reportStore *store.ReportStore,
	logger *slog.Logger,
) *RetentionManager {
	return &RetentionManager{
		interval: interval,
		ttl:      ttl,
		store:    reportStore,
		logger:   logger,
	}
}

// Start launches a background goroutine that ticks at the configured
// interval and sweeps expired reports. It stops when ctx is cancelled.
func (m *RetentionManager) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				m.Sweep(t)
			}
		}
	}()
}

// Sweep removes every report created more than ttl before now and returns
// how many were removed.
func (m *RetentionManager) Sweep(now time.Time) int {
	ids := m.store.DeleteCreatedBefore(now.Add(-m.ttl))
	for _, id := range ids {
		m.logger.Debug("report expired", slog.String("report_id", id))
	}
	return len(ids)
}
