package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FarmPulse/internal/domain/models"
	drepo "FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
)

// Collector orchestrates one collection cycle across all registered sources:
// fetch, persist with per-record tolerance, audit, notify. At most one run is
// in flight at a time; concurrent triggers queue on the mutex.
type Collector struct {
	sources  []drepo.Source
	store    drepo.PriceStore
	runLog   drepo.RunLog
	notifier drepo.Notifier
	metrics  drepo.Metrics
	log      *applogger.Logger

	sourceTimeout time.Duration
	now           func() time.Time

	mu sync.Mutex
}

// NewCollector creates the orchestrator. sourceTimeout bounds each adapter's
// Fetch individually so one stalled upstream cannot consume the whole run.
func NewCollector(
	sources []drepo.Source,
	store drepo.PriceStore,
	runLog drepo.RunLog,
	notifier drepo.Notifier,
	metrics drepo.Metrics,
	log *applogger.Logger,
	sourceTimeout time.Duration,
) *Collector {
	if sourceTimeout <= 0 {
		sourceTimeout = 10 * time.Second
	}
	return &Collector{
		sources:       sources,
		store:         store,
		runLog:        runLog,
		notifier:      notifier,
		metrics:       metrics,
		log:           log,
		sourceTimeout: sourceTimeout,
		now:           time.Now,
	}
}

// RunCollection executes one full cycle and returns its audit record. The
// record is appended to the run log and summarized to the notifier before
// returning; audit failures are logged, never propagated.
func (c *Collector) RunCollection(ctx context.Context, op models.RunOperation) models.CollectionRun {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.now()
	collected := 0
	saved := 0
	var upsertErr error

	for _, src := range c.sources {
		obs := c.fetchOne(ctx, src)
		collected += len(obs)
		if len(obs) == 0 {
			continue
		}

		n, err := c.store.UpsertBatch(ctx, obs)
		saved += n
		c.metrics.RecordSaved(src.Name(), n)
		if err != nil {
			upsertErr = err
			c.metrics.RecordError("upsert")
			c.log.Error("batch upsert incomplete",
				applogger.String("source", src.Name()),
				applogger.Error(err))
		}

		for _, o := range obs {
			c.metrics.RecordLastPrice(o.Commodity, o.Market, o.Price)
		}
	}

	run := models.CollectionRun{
		SourceName:       "all",
		Operation:        op,
		RecordsCollected: saved,
		Status:           runStatus(collected, saved, upsertErr),
		DurationSeconds:  c.now().Sub(start).Seconds(),
		CollectedAt:      start,
	}
	if upsertErr != nil {
		run.ErrorMessage = upsertErr.Error()
	} else if collected == 0 {
		run.ErrorMessage = "no records collected from any source"
	}

	c.metrics.RecordDuration("collection", run.DurationSeconds)

	if err := c.runLog.Append(ctx, run); err != nil {
		c.log.Error("run log append failed", applogger.Error(err))
	}

	summary := fmt.Sprintf("Collection %s: %d/%d records saved in %.1fs (%s)",
		run.Status, saved, collected, run.DurationSeconds, op)
	if err := c.notifier.Notify(ctx, "collection_run", summary); err != nil {
		c.log.Warn("notification failed", applogger.Error(err))
	}

	c.log.Info("collection run complete",
		applogger.String("status", string(run.Status)),
		applogger.String("operation", string(op)),
		applogger.Int("collected", collected),
		applogger.Int("saved", saved),
		applogger.Float64("duration_seconds", run.DurationSeconds))

	return run
}

// fetchOne runs a single adapter under its own timeout. Adapter panics are
// contained so one broken source never takes down a run.
func (c *Collector) fetchOne(ctx context.Context, src drepo.Source) (obs []models.PriceObservation) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.RecordError("source_panic")
			c.log.Error("source panicked",
				applogger.String("source", src.Name()),
				applogger.Any("panic", r))
			obs = nil
		}
	}()

	fctx, cancel := context.WithTimeout(ctx, c.sourceTimeout)
	defer cancel()

	obs = src.Fetch(fctx)
	if len(obs) == 0 {
		c.log.Warn("source returned no records", applogger.String("source", src.Name()))
	}
	return obs
}

// runStatus applies the outcome rules: success means everything collected
// was saved; partial means we made progress or had nothing to do; failed
// means records were lost to storage errors with nothing saved.
func runStatus(collected, saved int, upsertErr error) models.RunStatus {
	switch {
	case saved > 0 && saved == collected:
		return models.RunSuccess
	case saved > 0:
		return models.RunPartial
	case upsertErr == nil:
		return models.RunPartial
	default:
		return models.RunFailed
	}
}
