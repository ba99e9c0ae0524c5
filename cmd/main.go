package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradenotify/internal/adapters/config"
	"tradenotify/internal/adapters/errors/noop"
	"tradenotify/internal/adapters/errors/sentry"
	tgadapter "tradenotify/internal/adapters/telegram"
	"tradenotify/internal/api"
	"tradenotify/internal/api/health"
	"tradenotify/internal/api/notify"
	"tradenotify/internal/metrics"
	"tradenotify/pkg/errors"
	"tradenotify/pkg/logger"
	"tradenotify/pkg/telegram/adapters/tgbotapi"
	"tradenotify/pkg/templates"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Register Prometheus metrics
	metrics.Init()

	// Initialize the Telegram session; a rejected token is fatal
	bot, err := tgbotapi.NewBot(tgbotapi.Config{Token: cfg.Telegram.Token}, log)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	notifier := tgadapter.NewNotificationService(bot, templates.Get(), cfg.Telegram.ChatID, log)

	// Build the HTTP surface
	server := api.NewServer(
		api.ServerConfig{Addr: cfg.Server.Addr(), ServiceName: cfg.App.Name},
		health.New(log, cfg.App.Name),
		notify.New(notifier, log),
		log,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(server, bot, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown blocks until a termination signal, then tears the
// process down in order: drain the HTTP server first so no send is in
// flight when the Telegram session closes, then flush the tracker.
func waitForShutdown(server *api.Server, bot *tgbotapi.Bot, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown failed: %v", err)
	}

	bot.Close()

	if err := errorTracker.Flush(ctx); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}

	log.Info("Shutdown complete")
}
