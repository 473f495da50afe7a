package di

import (
	"context"
	"fmt"
	"time"

	"FarmPulse/internal/catalog"
	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	dservice "FarmPulse/internal/domain/service"
	"FarmPulse/internal/handler/api"
	internalrepo "FarmPulse/internal/repository"
	"FarmPulse/internal/scheduler"
	icache "FarmPulse/internal/service/cache"
	"FarmPulse/internal/service/ratelimit"
	"FarmPulse/internal/service/zamace"
	"FarmPulse/internal/services/forecast"
	"FarmPulse/internal/sources"
	"FarmPulse/internal/usecase"
	pkgch "FarmPulse/pkg/clickhouse"
	"FarmPulse/pkg/config"
	pkgkafka "FarmPulse/pkg/kafka"
	applogger "FarmPulse/pkg/logger"
	"FarmPulse/pkg/metrics"
	"FarmPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideCatalog loads the built-in reference data.
func ProvideCatalog() *catalog.Catalog {
	return catalog.New()
}

// ProvideClickHouseClient creates a ClickHouse client and applies the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(pkgch.Config{
		Host:         cfg.ClickHouse.Host,
		Port:         cfg.ClickHouse.Port,
		Database:     cfg.ClickHouse.Database,
		User:         cfg.ClickHouse.User,
		Password:     cfg.ClickHouse.Password,
		UseHTTP:      cfg.ClickHouse.UseHTTP,
		AsyncInsert:  cfg.ClickHouse.AsyncInsert,
		WaitForAsync: cfg.ClickHouse.WaitForAsync,
		DialTimeout:  cfg.ClickHouse.DialTimeout,
		ReadTimeout:  cfg.ClickHouse.ReadTimeout,
		MaxExecTime:  cfg.ClickHouse.MaxExecutionTime,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates the notification topic producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		RequiredAcks: cfg.Kafka.RequiredAcks,
		Compression:  cfg.Kafka.Compression,
		MaxAttempts:  cfg.Kafka.MaxAttempts,
		Linger:       cfg.Kafka.Linger,
		BatchSize:    cfg.Kafka.BatchSize,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceStore creates the ClickHouse price store.
func ProvidePriceStore(chClient *pkgch.Client) repository.PriceStore {
	return internalrepo.NewClickHousePriceStore(chClient.DB())
}

// ProvideRunLog creates the collection run audit log.
func ProvideRunLog(chClient *pkgch.Client) repository.RunLog {
	return internalrepo.NewClickHouseRunLog(chClient.DB())
}

// ProvideNotifier creates the Kafka-backed admin notifier.
func ProvideNotifier(producer *pkgkafka.Producer) repository.Notifier {
	return internalrepo.NewKafkaNotifier(producer)
}

// ProvideSources builds the enabled source adapters in config order. ZAMACE
// requires a configured WebSocket URL besides being enabled.
func ProvideSources(cfg *config.Config, cat *catalog.Catalog, log *applogger.Logger) []repository.Source {
	var out []repository.Source
	for _, name := range cfg.Collection.EnabledSources {
		switch name {
		case "ZNFU":
			out = append(out, sources.NewZNFU(cat, log))
		case "MACO":
			out = append(out, sources.NewMACO(cat, log))
		case "CSO":
			out = append(out, sources.NewCSO(cat, log))
		case "IAPRI":
			out = append(out, sources.NewIAPRI(cat, log))
		case "ZAMACE":
			if cfg.Zamace.WebSocketURL == "" {
				log.Warn("zamace enabled but websocket_url is empty, skipping")
				continue
			}
			feed := zamace.New(cfg.Zamace.WebSocketURL, cat.Commodities(),
				cfg.Zamace.MaxQuotes, cfg.Zamace.ReadTimeout)
			out = append(out, sources.NewZAMACE(cat, feed, log))
		default:
			log.Warn("unknown source in config", applogger.String("source", name))
		}
	}
	return out
}

// ProvideCollector creates the collection orchestrator.
func ProvideCollector(
	srcs []repository.Source,
	store repository.PriceStore,
	runLog repository.RunLog,
	notifier repository.Notifier,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Collector {
	return usecase.NewCollector(srcs, store, runLog, notifier, m, log, cfg.Collection.SourceTimeout)
}

// ProvideForecastStrategy selects the forecasting strategy from config:
// the full ensemble engine, or the context fallback for constrained
// deployments.
func ProvideForecastStrategy(cfg *config.Config, cat *catalog.Catalog) dservice.ForecastStrategy {
	if cfg.Forecast.Strategy == "basic" {
		return forecast.NewBasicFallback(cat)
	}
	return forecast.NewEnhanced(cat)
}

// ProvideAdvisor creates the recommendation advisor.
func ProvideAdvisor() dservice.Advisor {
	return forecast.NewThresholdAdvisor()
}

// ProvideForecastCache picks Redis when configured, in-process TTL otherwise.
func ProvideForecastCache(cfg *config.Config) icache.BytesCache {
	if cfg.Forecast.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Forecast.Redis.Addr,
			Password: cfg.Forecast.Redis.Password,
			DB:       cfg.Forecast.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideForecaster creates the forecast usecase.
func ProvideForecaster(
	store repository.PriceStore,
	strategy dservice.ForecastStrategy,
	advisor dservice.Advisor,
	bc icache.BytesCache,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Forecaster {
	return usecase.NewForecaster(store, strategy, advisor, bc, log,
		cfg.Forecast.HistoryDays, cfg.Forecast.CacheTTL)
}

// ProvideReporter creates the report usecase.
func ProvideReporter(
	store repository.PriceStore,
	runLog repository.RunLog,
	notifier repository.Notifier,
	cat *catalog.Catalog,
	log *applogger.Logger,
) *usecase.Reporter {
	return usecase.NewReporter(store, runLog, notifier, cat, log)
}

// ProvideMaintenance creates the retention usecase.
func ProvideMaintenance(
	store repository.PriceStore,
	runLog repository.RunLog,
	notifier repository.Notifier,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Maintenance {
	return usecase.NewMaintenance(store, runLog, notifier, log,
		cfg.Collection.RetentionDays, cfg.Collection.RunLogDays)
}

// ProvideScheduler creates the scheduler with the standing job table.
func ProvideScheduler(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.Collector,
	reporter *usecase.Reporter,
	maintenance *usecase.Maintenance,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(log, cfg.Scheduler.TickInterval)

	collect := func(ctx context.Context) error {
		run := collector.RunCollection(ctx, models.OpScheduled)
		if run.Status == models.RunFailed {
			return fmt.Errorf("collection failed: %s", run.ErrorMessage)
		}
		return nil
	}

	jobs := []struct {
		name    string
		trigger scheduler.Trigger
		fn      scheduler.JobFunc
	}{
		{"daily_collection",
			scheduler.Daily{Hour: cfg.Scheduler.DailyHour, Minute: cfg.Scheduler.DailyMinute},
			collect},
		{"hourly_collection",
			scheduler.HourlyWindow{
				StartHour: cfg.Scheduler.MarketOpenHour,
				EndHour:   cfg.Scheduler.MarketCloseHour,
				Minute:    cfg.Scheduler.HourlyMinute,
			},
			collect},
		{"market_status",
			scheduler.Daily{Hour: 7},
			reporter.MarketStatus},
		{"weekly_cleanup",
			scheduler.Weekly{Weekday: time.Sunday, Hour: 1},
			maintenance.Cleanup},
		{"daily_report",
			scheduler.Daily{Hour: 23},
			reporter.DailyReport},
		{"monthly_report",
			scheduler.Monthly{Day: 1, Hour: 3},
			reporter.MonthlyReport},
	}
	for _, j := range jobs {
		if err := s.Register(j.name, j.trigger, j.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", j.name, err)
		}
	}
	return s, nil
}

// ProvideLimiter creates the manual-trigger rate limiter: a burst of 3
// per client, refilling one token every 30 seconds.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New(3, 1.0/30)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(
	log *applogger.Logger,
	collector *usecase.Collector,
	forecaster *usecase.Forecaster,
	store repository.PriceStore,
	runLog repository.RunLog,
	cat *catalog.Catalog,
	sched *scheduler.Scheduler,
	limiter *ratelimit.Limiter,
) *api.PricesEchoHandler {
	return api.NewPricesEchoHandler(log, collector, forecaster, store, runLog, cat, sched, limiter)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	sched *scheduler.Scheduler,
	handler *api.PricesEchoHandler,
	chClient *pkgch.Client,
	notifier repository.Notifier,
) *server.App {
	return server.New(cfg, log, sched, handler, chClient, notifier)
}
