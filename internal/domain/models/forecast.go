package models

import "time"

// Confidence is the coarse label for how much history backed a forecast.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ForecastPoint is one day of a price forecast. Ephemeral, computed on
// demand and optionally cached.
type ForecastPoint struct {
	Date           time.Time
	PredictedPrice float64
	ChangePercent  float64 // vs the anchor price, 0 when the anchor is zero
	Trend          Trend
	Model          string
	Confidence     Confidence
}

// Recommendation is the advisor's discrete action derived from a forecast.
type Recommendation struct {
	Action     string
	Timing     string
	Reason     string
	Confidence Confidence
}
