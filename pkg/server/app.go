package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"FarmPulse/internal/domain/repository"
	"FarmPulse/internal/scheduler"
	pkgch "FarmPulse/pkg/clickhouse"
	"FarmPulse/pkg/config"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

// App encapsulates the application lifecycle: scheduler, HTTP API and
// infrastructure clients.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	sched      *scheduler.Scheduler
	handler    xhttp.Handler
	chClient   *pkgch.Client
	notifier   repository.Notifier
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	sched *scheduler.Scheduler,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	notifier repository.Notifier,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		sched:    sched,
		handler:  handler,
		chClient: chClient,
		notifier: notifier,
	}
}

// Run starts the scheduler and HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// start brings up the scheduler and HTTP server and announces the lifecycle
// transition on the notification topic.
func (a *App) start(ctx context.Context) error {
	if err := a.sched.Start(ctx); err != nil {
		return err
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.sched.Stop()
		return err
	}

	a.log.Info("farmpulse running",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("jobs", a.sched.Jobs()))

	a.notifyLifecycle(ctx, fmt.Sprintf("Scheduler started with jobs: %s",
		strings.Join(a.sched.Jobs(), ", ")))
	return nil
}

// shutdown stops services in reverse start order.
func (a *App) shutdown(ctx context.Context) error {
	a.sched.Stop()
	a.notifyLifecycle(ctx, "Scheduler stopped")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			a.log.Warn("notifier close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}

// notifyLifecycle publishes a scheduler lifecycle transition. Delivery
// failures are logged, never fatal.
func (a *App) notifyLifecycle(ctx context.Context, msg string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Notify(ctx, "scheduler_status", msg); err != nil {
		a.log.Warn("lifecycle notification failed", applogger.Error(err))
	}
}
