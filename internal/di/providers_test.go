package di

import (
	"testing"

	"FarmPulse/internal/services/forecast"
	"FarmPulse/pkg/config"
)

func TestProvideForecastStrategySelection(t *testing.T) {
	cat := ProvideCatalog()

	cfg := &config.Config{}
	cfg.Forecast.Strategy = "enhanced"
	if _, ok := ProvideForecastStrategy(cfg, cat).(*forecast.Enhanced); !ok {
		t.Fatalf("enhanced config should select the ensemble engine, got %T",
			ProvideForecastStrategy(cfg, cat))
	}

	cfg.Forecast.Strategy = "basic"
	if _, ok := ProvideForecastStrategy(cfg, cat).(*forecast.BasicFallback); !ok {
		t.Fatalf("basic config should select the fallback strategy, got %T",
			ProvideForecastStrategy(cfg, cat))
	}
}
