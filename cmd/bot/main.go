package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transbot/internal/adapters/discord"
	"transbot/internal/application"
	"transbot/internal/config"
	"transbot/internal/infrastructure/database"
	"transbot/internal/infrastructure/httpserver"
	"transbot/internal/infrastructure/i18n"
	"transbot/internal/infrastructure/langmap"
	"transbot/internal/infrastructure/metrics"
	"transbot/internal/infrastructure/yandex"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
	"transbot/pkg/logging"
)

const cachePurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("❌ Invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	languages, err := langmap.Load()
	if err != nil {
		logger.WithError(err).Fatal("❌ Failed to load language table")
	}
	translator := i18n.NewTranslator(cfg.Locale, logger)
	recorder := metrics.Recorder{}

	var service output.TranslationService = yandex.NewClient(cfg.YandexAPIURL, cfg.YandexAPIKey, logger)
	if cfg.CacheEnabled() {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.WithError(err).Fatal("❌ Database migration failed")
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.WithError(err).Fatal("❌ Database initialisation failed")
		}
		defer pool.Close()

		cache := database.NewTranslationCacheRepository(pool, cfg.CacheTTL)
		service = application.NewCachedTranslationService(service, cache, recorder, logger)
		go application.RunCachePurge(ctx, cache, cachePurgeInterval, logger)
	}

	pipeline := application.NewPipeline(service, languages, recorder, logger, application.PipelineOptions{
		Timeout: cfg.TranslateTimeout,
	})

	newUseCase := func(botID string, messenger output.Messenger) input.MessageUseCase {
		reporter := application.NewErrorReporter(messenger, translator, recorder, logger, cfg.Locale, "")
		return application.NewDispatcher(
			application.NewMatcher(botID),
			pipeline,
			reporter,
			messenger,
			translator,
			recorder,
			logger,
			application.DispatcherOptions{Locale: cfg.Locale, GreetDelay: cfg.GreetDelay},
		)
	}

	bot, err := discord.NewBot(cfg, newUseCase, logger)
	if err != nil {
		logger.WithError(err).Fatal("❌ Failed to create Discord bot")
	}

	if cfg.MetricsAddr != "" {
		srv := httpserver.New(cfg.MetricsAddr, bot.Ready, logger)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.WithError(err).Error("Ops HTTP server stopped")
			}
		}()
	}

	if err := bot.Start(ctx); err != nil {
		logger.WithError(err).Error("❌ Bot stopped")
		os.Exit(1)
	}
	logger.Info("Bot stopped")
}
