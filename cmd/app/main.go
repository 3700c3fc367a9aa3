package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"telegram-gate-bot/internal/application"
	"telegram-gate-bot/internal/config"
	"telegram-gate-bot/internal/domain/model"
	"telegram-gate-bot/internal/infra/api"
	"telegram-gate-bot/internal/infra/fetch"
	"telegram-gate-bot/internal/infra/logging"
	"telegram-gate-bot/internal/infra/metrics"
	"telegram-gate-bot/internal/infra/state"
	"telegram-gate-bot/internal/infra/storage"
	tele "telegram-gate-bot/internal/infra/telegram"
	"telegram-gate-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ring := logging.NewRingHook(cfg.Log.Retain)
	logger := logging.New(cfg.Log, cfg.Runtime.Dev, ring)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	// ---- Store and conversation state ----
	store := storage.NewJSONStore(cfg.Store.Path, cfg.Store.PrimaryAdminID, logger)
	registry := state.NewMemoryRegistry()

	// ---- Telegram ----
	bot, err := tele.NewRealBot(cfg.Bot.Token, cfg.Bot.Workers, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	logger.Info().Str("username", bot.Username()).Msg("bot authenticated")

	// ---- Use cases ----
	required := model.ChannelRef(cfg.Gate.RequiredChannel)
	subsUC := usecase.NewSubscriptionUseCase(store, bot, required, logger)
	broadcastUC := usecase.NewBroadcastUseCase(store, bot, logger)
	statsUC := usecase.NewStatsUseCase(store, logger)
	fetcher := fetch.NewHTTPFetcher(cfg.Gate.FetchTimeout, logger)

	// ---- Dispatcher ----
	dispatcher := application.NewDispatcher(
		bot, store, registry,
		subsUC, broadcastUC, statsUC,
		fetcher, ring,
		application.Options{
			DownloadPageURL: cfg.Gate.DownloadPageURL,
			SiteURL:         cfg.Gate.SiteURL,
			AssetsDir:       cfg.Gate.AssetsDir,
		},
		logger,
	)

	if err := bot.SetCommands(ctx); err != nil {
		logger.Warn().Err(err).Msg("set command menu")
	}

	go func() {
		if err := bot.StartPolling(ctx, dispatcher); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- HTTP API ----
	metrics.MustRegister()
	srv := api.NewServer(cfg.API.Addr, subsUC, statsUC, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	cancel()
	bot.StopPolling()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Gate.FetchTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
}
