package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rekapan-quality/bot/internal/bot"
	"github.com/rekapan-quality/bot/internal/config"
	"github.com/rekapan-quality/bot/internal/http/handlers"
	"github.com/rekapan-quality/bot/internal/http/middleware"
	"github.com/rekapan-quality/bot/internal/sheets"
)

// WebhookPath is where Telegram posts updates when webhook mode is on.
const WebhookPath = "/telegram/webhook"

func Router(cfg config.Config, botHandler *bot.Handler, store sheets.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	h := &handlers.Handler{
		Bot:         botHandler,
		Store:       store,
		MasterSheet: cfg.MasterSheet,
		Logger:      logger,
	}

	r.GET("/healthz", h.Healthz)
	r.POST(WebhookPath, middleware.WebhookSecret(cfg.WebhookSecret), h.Webhook)

	return r
}
