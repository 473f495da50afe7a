package forecast

import (
	"math"
	"math/rand"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	dservice "FarmPulse/internal/domain/service"
)

// Enhanced is the full forecasting strategy: it picks a model per commodity
// profile and history depth, and blends trend, seasonal and market-anchored
// projections. history is chronological; the anchor for change computation
// is the most recent observation.
type Enhanced struct {
	cat *catalog.Catalog
	rng *rand.Rand
	now func() time.Time
}

// NewEnhanced creates the strategy with wall-clock time and a seeded RNG.
func NewEnhanced(cat *catalog.Catalog) dservice.ForecastStrategy {
	return &Enhanced{
		cat: cat,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (e *Enhanced) Forecast(history []models.PricePoint, horizonDays int, commodity, market string) []models.ForecastPoint {
	if horizonDays <= 0 {
		return nil
	}

	profile := e.cat.CommodityProfile(commodity)
	anchor := e.anchor(history, profile, market)

	var points []models.ForecastPoint
	model := ""
	switch {
	case len(history) < 2:
		points = e.fallback(anchor, horizonDays, commodity, market, profile)
		model = modelFallback
	case profile.ModelHint == "ensemble" && len(history) >= 10:
		points = e.ensemble(history, anchor, horizonDays, commodity, market, profile)
		model = modelEnsemble
	case len(history) >= 5:
		points = e.linear(history, anchor, horizonDays, commodity, market, profile)
		model = modelLinear
	default:
		points = e.fallback(anchor, horizonDays, commodity, market, profile)
		model = modelFallback
	}

	confidence := models.ConfidenceLow
	if model != modelFallback && len(history) >= 20 {
		confidence = models.ConfidenceMedium
	}
	for i := range points {
		points[i].Model = model
		points[i].Confidence = confidence
	}
	return points
}

// anchor is the most recent observed price, or the market-adjusted typical
// price when no history exists.
func (e *Enhanced) anchor(history []models.PricePoint, profile catalog.CommodityProfile, market string) float64 {
	if len(history) > 0 {
		return history[len(history)-1].Price
	}
	return profile.TypicalPrice * e.cat.MarketFactor(market)
}

const (
	modelEnsemble = "ensemble"
	modelLinear   = "linear"
	modelFallback = "fallback_with_context"
)

// point builds one forecast day relative to the anchor.
func point(date time.Time, predicted, anchor float64) models.ForecastPoint {
	predicted = round2(predicted)
	change := 0.0
	if anchor > 0 {
		change = round2((predicted - anchor) / anchor * 100)
	}
	return models.ForecastPoint{
		Date:           date,
		PredictedPrice: predicted,
		ChangePercent:  change,
		Trend:          models.TrendOf(change),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// jitter draws a multiplier from [1-spread, 1+spread].
func (e *Enhanced) jitter(spread float64) float64 {
	return 1 + (e.rng.Float64()*2-1)*spread
}

// marketDayFactor is the Wednesday/Saturday market-day price bonus.
func marketDayFactor(date time.Time) float64 {
	if wd := date.Weekday(); wd == time.Wednesday || wd == time.Saturday {
		return 1.02
	}
	return 1.0
}

// recentTrend is the fractional price change across the last week of samples.
func recentTrend(history []models.PricePoint) float64 {
	if len(history) < 7 {
		return 0
	}
	week := history[len(history)-7:]
	first := week[0].Price
	if first <= 0 {
		return 0
	}
	return (week[len(week)-1].Price - first) / first
}
