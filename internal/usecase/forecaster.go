package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FarmPulse/internal/domain/models"
	drepo "FarmPulse/internal/domain/repository"
	dservice "FarmPulse/internal/domain/service"
	"FarmPulse/internal/service/cache"
	applogger "FarmPulse/pkg/logger"
)

// Forecaster serves price forecasts and selling recommendations from stored
// history. Forecast responses are cached per (commodity, market, horizon).
type Forecaster struct {
	store    drepo.PriceStore
	strategy dservice.ForecastStrategy
	advisor  dservice.Advisor
	cache    cache.BytesCache
	log      *applogger.Logger

	historyDays int
	cacheTTL    time.Duration
}

func NewForecaster(
	store drepo.PriceStore,
	strategy dservice.ForecastStrategy,
	advisor dservice.Advisor,
	bc cache.BytesCache,
	log *applogger.Logger,
	historyDays int,
	cacheTTL time.Duration,
) *Forecaster {
	if historyDays <= 0 {
		historyDays = 90
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Forecaster{
		store:       store,
		strategy:    strategy,
		advisor:     advisor,
		cache:       bc,
		log:         log,
		historyDays: historyDays,
		cacheTTL:    cacheTTL,
	}
}

// Forecast predicts prices for the next days. History is read newest-first
// from the store and reversed to chronological order for the strategy.
func (f *Forecaster) Forecast(ctx context.Context, commodity, market string, days int) ([]models.ForecastPoint, error) {
	key := fmt.Sprintf("forecast:%s:%s:%d", commodity, market, days)
	if f.cache != nil {
		if b, ok, err := f.cache.GetBytes(key); err == nil && ok {
			var cached []models.ForecastPoint
			if err := json.Unmarshal(b, &cached); err == nil {
				return cached, nil
			}
		}
	}

	newest, err := f.store.History(ctx, commodity, market, f.historyDays, f.historyDays)
	if err != nil {
		return nil, fmt.Errorf("forecast history: %w", err)
	}

	history := make([]models.PricePoint, len(newest))
	for i, p := range newest {
		history[len(newest)-1-i] = p
	}

	points := f.strategy.Forecast(history, days, commodity, market)

	if f.cache != nil {
		if b, err := json.Marshal(points); err == nil {
			if err := f.cache.SetBytes(key, b, f.cacheTTL); err != nil {
				f.log.Warn("forecast cache write failed", applogger.Error(err))
			}
		}
	}
	return points, nil
}

// Recommend turns a forecast into a buy/sell/hold recommendation.
func (f *Forecaster) Recommend(ctx context.Context, commodity, market string, days int) (models.Recommendation, error) {
	points, err := f.Forecast(ctx, commodity, market, days)
	if err != nil {
		return models.Recommendation{}, err
	}
	return f.advisor.Recommend(points), nil
}
