package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/service/cache"
)

type recordingStrategy struct {
	received []models.PricePoint
	calls    int
	out      []models.ForecastPoint
}

func (s *recordingStrategy) Forecast(history []models.PricePoint, horizonDays int, commodity, market string) []models.ForecastPoint {
	s.calls++
	s.received = history
	return s.out
}

type fixedAdvisor struct {
	rec models.Recommendation
}

func (a *fixedAdvisor) Recommend(forecast []models.ForecastPoint) models.Recommendation {
	return a.rec
}

func newestFirstHistory() []models.PricePoint {
	base := time.Date(2024, 10, 14, 8, 0, 0, 0, time.UTC)
	return []models.PricePoint{
		{Price: 124.00, RecordedAt: base},
		{Price: 122.00, RecordedAt: base.AddDate(0, 0, -1)},
		{Price: 120.00, RecordedAt: base.AddDate(0, 0, -2)},
	}
}

func someForecast() []models.ForecastPoint {
	return []models.ForecastPoint{
		{
			Date:           time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC),
			PredictedPrice: 125.10,
			ChangePercent:  0.89,
			Trend:          models.TrendUp,
			Model:          "linear",
			Confidence:     models.ConfidenceLow,
		},
	}
}

func TestForecastReversesHistoryToChronological(t *testing.T) {
	store := &fakeStore{history: newestFirstHistory()}
	strategy := &recordingStrategy{out: someForecast()}
	f := NewForecaster(store, strategy, &fixedAdvisor{}, cache.NewTTLCache(), testLogger(t), 90, time.Minute)

	if _, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 7); err != nil {
		t.Fatalf("Forecast: %v", err)
	}

	if len(strategy.received) != 3 {
		t.Fatalf("strategy received %d points", len(strategy.received))
	}
	for i := 1; i < len(strategy.received); i++ {
		if strategy.received[i].RecordedAt.Before(strategy.received[i-1].RecordedAt) {
			t.Fatal("history handed to the strategy must be oldest first")
		}
	}
	if strategy.received[0].Price != 120.00 {
		t.Fatalf("oldest price = %v", strategy.received[0].Price)
	}
}

func TestForecastCacheHitSkipsStore(t *testing.T) {
	store := &fakeStore{history: newestFirstHistory()}
	strategy := &recordingStrategy{out: someForecast()}
	f := NewForecaster(store, strategy, &fixedAdvisor{}, cache.NewTTLCache(), testLogger(t), 90, time.Minute)

	first, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 7)
	if err != nil {
		t.Fatalf("first Forecast: %v", err)
	}
	second, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 7)
	if err != nil {
		t.Fatalf("second Forecast: %v", err)
	}

	if store.historyHits != 1 {
		t.Fatalf("store hit %d times, want 1", store.historyHits)
	}
	if strategy.calls != 1 {
		t.Fatalf("strategy called %d times, want 1", strategy.calls)
	}
	if len(first) != len(second) || first[0].PredictedPrice != second[0].PredictedPrice {
		t.Fatal("cached forecast should match the computed one")
	}
}

func TestForecastDistinctHorizonsDoNotShareCache(t *testing.T) {
	store := &fakeStore{history: newestFirstHistory()}
	strategy := &recordingStrategy{out: someForecast()}
	f := NewForecaster(store, strategy, &fixedAdvisor{}, cache.NewTTLCache(), testLogger(t), 90, time.Minute)

	if _, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 7); err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if _, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 14); err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if strategy.calls != 2 {
		t.Fatalf("strategy called %d times, want 2", strategy.calls)
	}
}

func TestForecastStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{historyErr: errors.New("clickhouse unavailable")}
	f := NewForecaster(store, &recordingStrategy{}, &fixedAdvisor{}, cache.NewTTLCache(), testLogger(t), 90, time.Minute)

	if _, err := f.Forecast(context.Background(), "Maize", "", 7); err == nil {
		t.Fatal("expected error when history read fails")
	}
}

func TestForecastWorksWithoutCache(t *testing.T) {
	store := &fakeStore{history: newestFirstHistory()}
	strategy := &recordingStrategy{out: someForecast()}
	f := NewForecaster(store, strategy, &fixedAdvisor{}, nil, testLogger(t), 90, time.Minute)

	points, err := f.Forecast(context.Background(), "Maize", "Soweto Market", 7)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points", len(points))
	}
}

func TestRecommendUsesAdvisor(t *testing.T) {
	store := &fakeStore{history: newestFirstHistory()}
	want := models.Recommendation{
		Action:     "Hold",
		Timing:     "No immediate action needed",
		Reason:     "Prices expected to remain stable",
		Confidence: models.ConfidenceMedium,
	}
	f := NewForecaster(store, &recordingStrategy{out: someForecast()}, &fixedAdvisor{rec: want}, cache.NewTTLCache(), testLogger(t), 90, time.Minute)

	rec, err := f.Recommend(context.Background(), "Maize", "Soweto Market", 7)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec != want {
		t.Fatalf("recommendation = %+v", rec)
	}
}
