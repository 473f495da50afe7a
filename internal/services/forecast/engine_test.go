package forecast

import (
	"math/rand"
	"testing"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
)

func fixedOctober() time.Time {
	return time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) *Enhanced {
	t.Helper()
	e := NewEnhanced(catalog.New()).(*Enhanced)
	e.now = fixedOctober
	e.rng = rand.New(rand.NewSource(42))
	return e
}

// maizeHistory builds n days of Maize prices around 120.50 with a bounded
// deterministic wobble, oldest first.
func maizeHistory(n int) []models.PricePoint {
	rng := rand.New(rand.NewSource(7))
	start := fixedOctober().AddDate(0, 0, -n)
	out := make([]models.PricePoint, n)
	for i := range out {
		wobble := 1 + (rng.Float64()*2-1)*0.05
		out[i] = models.PricePoint{
			Price:      120.50 * wobble,
			RecordedAt: start.AddDate(0, 0, i),
		}
	}
	return out
}

func TestEnsembleForecastStaysNearTypical(t *testing.T) {
	e := newTestEngine(t)
	history := maizeHistory(90)

	points := e.Forecast(history, 7, "Maize", "Lusaka")
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}

	for _, p := range points {
		if p.Model != modelEnsemble {
			t.Fatalf("expected ensemble model, got %s", p.Model)
		}
		if p.Confidence != models.ConfidenceMedium {
			t.Fatalf("90 samples should yield medium confidence, got %s", p.Confidence)
		}
		if p.PredictedPrice < 120.50*0.7 || p.PredictedPrice > 120.50*1.3 {
			t.Fatalf("prediction %.2f outside plausible band around 120.50", p.PredictedPrice)
		}
	}
}

func TestForecastDatesAreSequentialDays(t *testing.T) {
	e := newTestEngine(t)
	points := e.Forecast(maizeHistory(30), 5, "Maize", "Lusaka")

	for i, p := range points {
		want := fixedOctober().AddDate(0, 0, i+1)
		if !p.Date.Equal(want) {
			t.Fatalf("point %d date %v want %v", i, p.Date, want)
		}
	}
}

func TestThinHistoryFallsBack(t *testing.T) {
	e := newTestEngine(t)

	for _, n := range []int{0, 1} {
		points := e.Forecast(maizeHistory(n), 7, "Maize", "Lusaka")
		if len(points) != 7 {
			t.Fatalf("expected 7 points for %d samples, got %d", n, len(points))
		}
		for _, p := range points {
			if p.Model != modelFallback {
				t.Fatalf("%d samples should fall back, got model %s", n, p.Model)
			}
			if p.Confidence != models.ConfidenceLow {
				t.Fatalf("fallback confidence must be low, got %s", p.Confidence)
			}
			if p.PredictedPrice <= 0 {
				t.Fatalf("fallback predicted non-positive price %.2f", p.PredictedPrice)
			}
		}
	}
}

func TestMidHistoryUsesLinearModel(t *testing.T) {
	e := newTestEngine(t)

	points := e.Forecast(maizeHistory(6), 3, "Maize", "Lusaka")
	for _, p := range points {
		if p.Model != modelLinear {
			t.Fatalf("6 samples of an ensemble commodity should use linear, got %s", p.Model)
		}
	}
}

func TestLinearHintSkipsEnsemble(t *testing.T) {
	e := newTestEngine(t)

	// Beans is profiled with the linear hint, so deep history still uses it.
	history := maizeHistory(40)
	points := e.Forecast(history, 3, "Beans", "Lusaka")
	for _, p := range points {
		if p.Model != modelLinear {
			t.Fatalf("beans should use linear regardless of depth, got %s", p.Model)
		}
	}
}

func TestChangePercentAnchorsToMostRecent(t *testing.T) {
	e := newTestEngine(t)

	// Rising series: anchor must be the latest (highest) price, so a
	// flat projection reads as a small change, not a +20% jump.
	history := make([]models.PricePoint, 12)
	for i := range history {
		history[i] = models.PricePoint{
			Price:      100 + float64(i),
			RecordedAt: fixedOctober().AddDate(0, 0, i-12),
		}
	}
	anchor := history[len(history)-1].Price

	points := e.Forecast(history, 1, "Maize", "Lusaka")
	p := points[0]
	wantChange := (p.PredictedPrice - anchor) / anchor * 100
	if diff := p.ChangePercent - wantChange; diff > 0.01 || diff < -0.01 {
		t.Fatalf("change %.2f not anchored to latest price (want %.2f)", p.ChangePercent, wantChange)
	}
	if p.ChangePercent > 0 && p.Trend != models.TrendUp {
		t.Fatalf("trend %s does not match positive change", p.Trend)
	}
}

func TestZeroAnchorYieldsZeroChange(t *testing.T) {
	e := newTestEngine(t)

	history := []models.PricePoint{
		{Price: 0, RecordedAt: fixedOctober().AddDate(0, 0, -2)},
		{Price: 0, RecordedAt: fixedOctober().AddDate(0, 0, -1)},
	}
	points := e.Forecast(history, 3, "Maize", "Lusaka")
	for _, p := range points {
		if p.ChangePercent != 0 {
			t.Fatalf("zero anchor must yield zero change, got %.2f", p.ChangePercent)
		}
		if p.Trend != models.TrendStable {
			t.Fatalf("zero change must read stable, got %s", p.Trend)
		}
	}
}

func TestUnknownCommodityGetsGenericProfile(t *testing.T) {
	e := newTestEngine(t)

	points := e.Forecast(nil, 2, "Dragon Fruit", "Lusaka")
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	for _, p := range points {
		if p.PredictedPrice <= 0 {
			t.Fatalf("generic profile should still price, got %.2f", p.PredictedPrice)
		}
	}
}

func TestZeroHorizon(t *testing.T) {
	e := newTestEngine(t)
	if points := e.Forecast(maizeHistory(30), 0, "Maize", "Lusaka"); points != nil {
		t.Fatalf("zero horizon must return nil, got %d points", len(points))
	}
}

func TestBasicFallbackAlwaysFallsBack(t *testing.T) {
	b := NewBasicFallback(catalog.New()).(*BasicFallback)
	b.enhanced.now = fixedOctober
	b.enhanced.rng = rand.New(rand.NewSource(42))

	points := b.Forecast(maizeHistory(90), 4, "Maize", "Lusaka")
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Model != modelFallback || p.Confidence != models.ConfidenceLow {
			t.Fatalf("basic fallback must label fallback/low, got %s/%s", p.Model, p.Confidence)
		}
	}
}
