package forecast

import (
	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	dservice "FarmPulse/internal/domain/service"
)

// ensemble averages three projections per day (trend line, seasonal walk,
// market-anchored blend), then applies seasonal and market adjustment with a
// half-volatility perturbation.
func (e *Enhanced) ensemble(history []models.PricePoint, anchor float64, days int, commodity, market string, profile catalog.CommodityProfile) []models.ForecastPoint {
	now := e.now()
	trendLine := e.trendLineSeries(history, days, commodity, market)
	seasonalWalk := e.seasonalSeries(history, anchor, days, commodity, market)
	marketBlend := e.marketAnchoredSeries(anchor, days, commodity, market, profile)

	out := make([]models.ForecastPoint, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		avg := (trendLine[i] + seasonalWalk[i] + marketBlend[i]) / 3

		seasonal := e.cat.SeasonalFactor(commodity, date.Month())
		marketFactor := e.cat.MarketFactor(market)
		predicted := avg * seasonal * marketFactor * e.jitter(profile.Volatility/2)

		out = append(out, point(date, predicted, anchor))
	}
	return out
}

// trendLineSeries extrapolates an ordinary least squares fit over the whole
// history, seasonally and market adjusted.
func (e *Enhanced) trendLineSeries(history []models.PricePoint, days int, commodity, market string) []float64 {
	slope, intercept := olsFit(history)
	now := e.now()
	n := float64(len(history))

	out := make([]float64, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		predicted := intercept + slope*(n+float64(i))
		out[i] = predicted *
			e.cat.SeasonalFactor(commodity, date.Month()) *
			e.cat.MarketFactor(market)
	}
	return out
}

// seasonalSeries walks the anchor forward through seasonal, market-day and
// market factors, nudged by the recent weekly trend.
func (e *Enhanced) seasonalSeries(history []models.PricePoint, anchor float64, days int, commodity, market string) []float64 {
	now := e.now()
	weekly := recentTrend(history)

	out := make([]float64, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		predicted := anchor *
			e.cat.SeasonalFactor(commodity, date.Month()) *
			marketDayFactor(date) *
			e.cat.MarketFactor(market)
		if len(history) >= 7 {
			predicted *= 1 + 0.001*float64(i+1)*weekly
		}
		out[i] = predicted
	}
	return out
}

// marketAnchoredSeries blends the live anchor (70%) with the commodity's
// market-adjusted typical price (30%), with a mild upward drift.
func (e *Enhanced) marketAnchoredSeries(anchor float64, days int, commodity, market string, profile catalog.CommodityProfile) []float64 {
	now := e.now()
	marketFactor := e.cat.MarketFactor(market)

	out := make([]float64, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		typical := profile.TypicalPrice * marketFactor *
			e.cat.SeasonalFactor(commodity, date.Month())
		predicted := 0.7*anchor + 0.3*typical
		predicted *= e.jitter(profile.Volatility / 2)
		predicted *= 1 + 0.001*float64(i+1)
		out[i] = predicted
	}
	return out
}

// linear extrapolates the gap between the 3-sample and 5-sample moving
// averages, with quarter-volatility perturbation.
func (e *Enhanced) linear(history []models.PricePoint, anchor float64, days int, commodity, market string, profile catalog.CommodityProfile) []models.ForecastPoint {
	now := e.now()
	trend := movingAverageTrend(history)

	out := make([]models.ForecastPoint, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		predicted := anchor * (1 + trend*float64(i+1)) *
			e.cat.SeasonalFactor(commodity, date.Month()) *
			e.cat.MarketFactor(market) *
			e.jitter(profile.Volatility/4)
		out = append(out, point(date, predicted, anchor))
	}
	return out
}

// fallback projects from a 60/40 blend of anchor and typical price when
// history is too thin for a model, with a full-volatility band.
func (e *Enhanced) fallback(anchor float64, days int, commodity, market string, profile catalog.CommodityProfile) []models.ForecastPoint {
	now := e.now()

	base := profile.TypicalPrice
	if anchor > 0 {
		base = 0.6*anchor + 0.4*profile.TypicalPrice
	}

	out := make([]models.ForecastPoint, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i+1)
		predicted := base *
			e.cat.SeasonalFactor(commodity, date.Month()) *
			e.cat.MarketFactor(market) *
			marketDayFactor(date) *
			e.jitter(profile.Volatility)
		predicted *= 1 + 0.0005*float64(i+1)
		out = append(out, point(date, predicted, anchor))
	}
	return out
}

// olsFit returns the least-squares line through (index, price).
func olsFit(history []models.PricePoint) (slope, intercept float64) {
	n := float64(len(history))
	if n == 0 {
		return 0, 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Price
		sumXY += x * p.Price
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// movingAverageTrend compares the 3-sample and 5-sample trailing means.
func movingAverageTrend(history []models.PricePoint) float64 {
	if len(history) < 3 {
		return 0
	}
	ma3 := trailingMean(history, 3)
	ma5 := ma3
	if len(history) >= 5 {
		ma5 = trailingMean(history, 5)
	}
	if ma5 <= 0 {
		return 0
	}
	return (ma3 - ma5) / ma5
}

func trailingMean(history []models.PricePoint, n int) float64 {
	tail := history[len(history)-n:]
	sum := 0.0
	for _, p := range tail {
		sum += p.Price
	}
	return sum / float64(n)
}

// BasicFallback always uses the context fallback regardless of history
// depth. Wired in place of Enhanced for constrained deployments.
type BasicFallback struct {
	enhanced *Enhanced
}

func NewBasicFallback(cat *catalog.Catalog) dservice.ForecastStrategy {
	return &BasicFallback{enhanced: NewEnhanced(cat).(*Enhanced)}
}

func (b *BasicFallback) Forecast(history []models.PricePoint, horizonDays int, commodity, market string) []models.ForecastPoint {
	if horizonDays <= 0 {
		return nil
	}
	e := b.enhanced
	profile := e.cat.CommodityProfile(commodity)
	points := e.fallback(e.anchor(history, profile, market), horizonDays, commodity, market, profile)
	for i := range points {
		points[i].Model = modelFallback
		points[i].Confidence = models.ConfidenceLow
	}
	return points
}

var _ dservice.ForecastStrategy = (*Enhanced)(nil)
var _ dservice.ForecastStrategy = (*BasicFallback)(nil)
