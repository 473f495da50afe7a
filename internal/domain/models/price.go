package models

import "time"

// Trend labels the direction of a price movement.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendOf classifies a percentage change. Stable only when exactly zero.
func TrendOf(changePercent float64) Trend {
	switch {
	case changePercent > 0:
		return TrendUp
	case changePercent < 0:
		return TrendDown
	default:
		return TrendStable
	}
}

// PriceObservation is a single normalized price record produced by a source
// adapter. Uniqueness is on (Market, Commodity, calendar day of RecordedAt);
// a later write for the same key replaces the earlier one.
type PriceObservation struct {
	Market     string
	Commodity  string
	Price      float64
	Unit       string
	Volume     *float64
	Quality    string // "" when the source reports none
	Source     string
	Verified   bool
	RecordedAt time.Time
	Region     string // "" when unknown
	TrendHint  Trend  // "" when the source reports none
	Lat        *float64
	Lon        *float64
}

// PricePoint is one (price, time) sample of a commodity's history.
type PricePoint struct {
	Price      float64
	RecordedAt time.Time
}

// RunOperation distinguishes scheduled from manually triggered collections.
type RunOperation string

const (
	OpScheduled RunOperation = "scheduled"
	OpManual    RunOperation = "manual"
)

// RunStatus classifies a collection run outcome.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunPartial RunStatus = "partial"
	RunFailed  RunStatus = "failed"
)

// CollectionRun is the append-only audit record of one orchestrator
// invocation. Created once per run, never mutated.
type CollectionRun struct {
	SourceName       string
	Operation        RunOperation
	RecordsCollected int
	Status           RunStatus
	ErrorMessage     string
	DurationSeconds  float64
	CollectedAt      time.Time
}
