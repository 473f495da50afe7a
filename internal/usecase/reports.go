package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	drepo "FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/util"
)

// Reporter assembles operational summaries and delivers them as admin
// notifications.
type Reporter struct {
	store    drepo.PriceStore
	runLog   drepo.RunLog
	notifier drepo.Notifier
	cat      *catalog.Catalog
	log      *applogger.Logger
	now      func() time.Time
}

func NewReporter(store drepo.PriceStore, runLog drepo.RunLog, notifier drepo.Notifier, cat *catalog.Catalog, log *applogger.Logger) *Reporter {
	return &Reporter{store: store, runLog: runLog, notifier: notifier, cat: cat, log: log, now: time.Now}
}

// DailyReport summarizes today's collection activity.
func (r *Reporter) DailyReport(ctx context.Context) error {
	now := r.now()
	day := util.DayOf(now)

	count, err := r.store.CountOnDay(ctx, day)
	if err != nil {
		return fmt.Errorf("daily report: %w", err)
	}

	runs, err := r.runLog.Recent(ctx, 50)
	if err != nil {
		return fmt.Errorf("daily report runs: %w", err)
	}
	runsToday, succeeded := 0, 0
	for _, run := range runs {
		if util.DayOf(run.CollectedAt) != day {
			continue
		}
		runsToday++
		if run.Status == models.RunSuccess {
			succeeded++
		}
	}

	msg := fmt.Sprintf("Daily report %s: %d price records, %d collection runs (%d success)",
		day, count, runsToday, succeeded)
	r.log.Info("daily report", applogger.String("summary", msg))
	return r.notifier.Notify(ctx, "daily_report", msg)
}

// MonthlyReport summarizes the month just ended. Runs on the first of the
// month, so the reporting window is the previous calendar month.
func (r *Reporter) MonthlyReport(ctx context.Context) error {
	now := r.now()
	prev := now.AddDate(0, -1, 0)

	runs, err := r.runLog.Recent(ctx, 500)
	if err != nil {
		return fmt.Errorf("monthly report: %w", err)
	}
	total, records := 0, 0
	for _, run := range runs {
		if run.CollectedAt.Year() != prev.Year() || run.CollectedAt.Month() != prev.Month() {
			continue
		}
		total++
		records += run.RecordsCollected
	}

	msg := fmt.Sprintf("Monthly report %s %d: %d collection runs, %d records saved",
		prev.Month(), prev.Year(), total, records)
	r.log.Info("monthly report", applogger.String("summary", msg))
	return r.notifier.Notify(ctx, "monthly_report", msg)
}

// MarketStatus notifies which regions hold market day today.
func (r *Reporter) MarketStatus(ctx context.Context) error {
	today := r.now().Weekday()

	var open []string
	for _, region := range r.cat.Regions() {
		if r.cat.IsMarketDay(region, today) {
			open = append(open, region)
		}
	}

	var msg string
	if len(open) == 0 {
		msg = fmt.Sprintf("No regions hold market day on %s", today)
	} else {
		msg = fmt.Sprintf("Market day (%s): %s", today, strings.Join(open, ", "))
	}
	r.log.Info("market status", applogger.String("summary", msg))
	return r.notifier.Notify(ctx, "market_status", msg)
}
