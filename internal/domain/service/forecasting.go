package service

import (
	"FarmPulse/internal/domain/models"
)

// ForecastStrategy turns a historical price series into horizonDays of
// predictions for one commodity/market pair. history is ordered oldest first.
type ForecastStrategy interface {
	Forecast(history []models.PricePoint, horizonDays int, commodity, market string) []models.ForecastPoint
}

// Advisor derives a discrete trading action from a forecast. Must never fail:
// an empty forecast yields a low-confidence "Monitor" default.
type Advisor interface {
	Recommend(forecast []models.ForecastPoint) models.Recommendation
}
