package repository

import (
	"context"

	"FarmPulse/internal/domain/models"
)

// Source fetches raw price observations from one named upstream.
// Fetch never returns an error to the caller: internal failures are logged
// by the adapter and reported as an empty slice.
type Source interface {
	Name() string
	Fetch(ctx context.Context) []models.PriceObservation
}

// PriceStore persists price observations with upsert semantics keyed by
// (market, commodity, calendar day of recorded_at).
type PriceStore interface {
	Upsert(ctx context.Context, o models.PriceObservation) error
	// UpsertBatch writes each observation independently and keeps going on
	// per-record failures. Returns the number saved.
	UpsertBatch(ctx context.Context, obs []models.PriceObservation) (int, error)
	// History returns (price, recordedAt) samples newest first. market may be
	// empty; sinceDays <= 0 means no age filter.
	History(ctx context.Context, commodity, market string, limit, sinceDays int) ([]models.PricePoint, error)
	// LatestPrice returns the most recent observed price, or ok=false when
	// no history exists.
	LatestPrice(ctx context.Context, commodity, market string) (float64, bool, error)
	// PurgeOlderThan deletes observations older than the cutoff and returns
	// how many rows were removed.
	PurgeOlderThan(ctx context.Context, days int) (int, error)
	// CountOnDay counts observations recorded on the given calendar day.
	CountOnDay(ctx context.Context, day string) (int, error)
	Health(ctx context.Context) error
	Close() error
}

// RunLog is the append-only audit log of collection runs.
type RunLog interface {
	Append(ctx context.Context, run models.CollectionRun) error
	Recent(ctx context.Context, limit int) ([]models.CollectionRun, error)
	PurgeOlderThan(ctx context.Context, days int) (int, error)
}

// Notifier delivers human-readable admin notifications (run summaries,
// scheduler lifecycle transitions). Delivery mechanism is external.
type Notifier interface {
	Notify(ctx context.Context, kind, message string) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordSaved(source string, count int)
	RecordError(kind string)
	RecordLastPrice(commodity, market string, price float64)
	RecordDuration(op string, seconds float64)
}
