//go:build wireinject
// +build wireinject

package di

import (
	"FarmPulse/pkg/config"
	"FarmPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCatalog,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvidePriceStore,
		ProvideRunLog,
		ProvideNotifier,
		ProvideSources,

		// Forecasting
		ProvideForecastStrategy,
		ProvideAdvisor,
		ProvideForecastCache,

		// Use cases
		ProvideCollector,
		ProvideForecaster,
		ProvideReporter,
		ProvideMaintenance,

		// Scheduler and HTTP
		ProvideScheduler,
		ProvideLimiter,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
