package forecast

import (
	"FarmPulse/internal/domain/models"
	dservice "FarmPulse/internal/domain/service"
)

// ThresholdAdvisor maps the mean forecast change to a discrete trading
// action. Cutoffs are symmetric at ±3% and ±8%.
type ThresholdAdvisor struct{}

func NewThresholdAdvisor() dservice.Advisor {
	return &ThresholdAdvisor{}
}

func (a *ThresholdAdvisor) Recommend(forecast []models.ForecastPoint) models.Recommendation {
	if len(forecast) == 0 {
		return models.Recommendation{
			Action:     "Monitor",
			Timing:     "Check daily",
			Reason:     "Insufficient data for analysis",
			Confidence: models.ConfidenceLow,
		}
	}

	sum := 0.0
	for _, p := range forecast {
		sum += p.ChangePercent
	}
	avg := sum / float64(len(forecast))

	switch {
	case avg > 8:
		return models.Recommendation{
			Action:     "Hold/Buy",
			Timing:     "Within 3 days",
			Reason:     "Strong upward trend expected",
			Confidence: models.ConfidenceHigh,
		}
	case avg > 3:
		return models.Recommendation{
			Action:     "Consider Selling",
			Timing:     "In 2-3 days",
			Reason:     "Moderate upward trend",
			Confidence: models.ConfidenceMedium,
		}
	case avg < -8:
		return models.Recommendation{
			Action:     "Sell",
			Timing:     "Immediately",
			Reason:     "Strong downward trend",
			Confidence: models.ConfidenceHigh,
		}
	case avg < -3:
		return models.Recommendation{
			Action:     "Consider Selling",
			Timing:     "Within 1-2 days",
			Reason:     "Moderate downward trend",
			Confidence: models.ConfidenceMedium,
		}
	default:
		return models.Recommendation{
			Action:     "Hold",
			Timing:     "No immediate action",
			Reason:     "Prices expected to remain stable",
			Confidence: models.ConfidenceMedium,
		}
	}
}

var _ dservice.Advisor = (*ThresholdAdvisor)(nil)
