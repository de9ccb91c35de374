package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rekapan-quality/bot/internal/bot"
	"github.com/rekapan-quality/bot/internal/config"
	"github.com/rekapan-quality/bot/internal/dates"
	httpapi "github.com/rekapan-quality/bot/internal/http"
	"github.com/rekapan-quality/bot/internal/roster"
	"github.com/rekapan-quality/bot/internal/sheets"
	"github.com/rekapan-quality/bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "rekapan-bot").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sheets.NewGoogle(ctx, cfg.GoogleKey, cfg.SheetID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init sheets client")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init telegram api")
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("authorized")

	handler := &bot.Handler{
		Store:       store,
		Roster:      &roster.Service{Store: store, Sheet: cfg.MasterSheet},
		Sender:      &telegram.BotSender{API: api, Logger: logger},
		Logger:      logger,
		RecordSheet: cfg.RecordSheet,
		Loc:         dates.Jakarta(),
		Now:         time.Now,
	}

	if cfg.UseWebhook() {
		runWebhook(ctx, cfg, api, handler, store, logger)
	} else {
		runPolling(ctx, api, handler, logger)
	}
	logger.Info().Msg("bot stopped")
}

func runPolling(ctx context.Context, api *tgbotapi.BotAPI, handler *bot.Handler, logger zerolog.Logger) {
	// Drop a previously registered webhook, otherwise getUpdates is refused.
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
		logger.Warn().Err(err).Msg("delete webhook failed")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)
	logger.Info().Msg("long polling started")

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			handler.HandleUpdate(ctx, update)
		}
	}
}

func runWebhook(ctx context.Context, cfg config.Config, api *tgbotapi.BotAPI, handler *bot.Handler, store sheets.Store, logger zerolog.Logger) {
	params := tgbotapi.Params{"url": cfg.PublicURL + httpapi.WebhookPath}
	if cfg.WebhookSecret != "" {
		params["secret_token"] = cfg.WebhookSecret
	}
	if _, err := api.MakeRequest("setWebhook", params); err != nil {
		logger.Fatal().Err(err).Msg("failed to register webhook")
	}

	router := httpapi.Router(cfg, handler, store, logger)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("webhook server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
}
