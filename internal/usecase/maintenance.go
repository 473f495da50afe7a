package usecase

import (
	"context"
	"fmt"

	drepo "FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
)

// Maintenance applies the retention policy: price rows past retentionDays
// and run-log rows past runLogDays are purged by the weekly cleanup job.
type Maintenance struct {
	store    drepo.PriceStore
	runLog   drepo.RunLog
	notifier drepo.Notifier
	log      *applogger.Logger

	retentionDays int
	runLogDays    int
}

func NewMaintenance(store drepo.PriceStore, runLog drepo.RunLog, notifier drepo.Notifier, log *applogger.Logger, retentionDays, runLogDays int) *Maintenance {
	if retentionDays <= 0 {
		retentionDays = 180
	}
	if runLogDays <= 0 {
		runLogDays = 90
	}
	return &Maintenance{
		store:         store,
		runLog:        runLog,
		notifier:      notifier,
		log:           log,
		retentionDays: retentionDays,
		runLogDays:    runLogDays,
	}
}

// Cleanup purges both stores and notifies the result. Run-log purge failures
// do not block the price purge result.
func (m *Maintenance) Cleanup(ctx context.Context) error {
	prices, err := m.store.PurgeOlderThan(ctx, m.retentionDays)
	if err != nil {
		return fmt.Errorf("cleanup prices: %w", err)
	}

	runs, err := m.runLog.PurgeOlderThan(ctx, m.runLogDays)
	if err != nil {
		m.log.Error("run log purge failed", applogger.Error(err))
	}

	m.log.Info("cleanup complete",
		applogger.Int("prices_deleted", prices),
		applogger.Int("runs_deleted", runs))

	msg := fmt.Sprintf("Cleanup: removed %d price rows older than %d days, %d run-log rows older than %d days",
		prices, m.retentionDays, runs, m.runLogDays)
	if err := m.notifier.Notify(ctx, "cleanup", msg); err != nil {
		m.log.Warn("notification failed", applogger.Error(err))
	}
	return nil
}
