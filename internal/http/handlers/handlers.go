package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/rekapan-quality/bot/internal/bot"
	"github.com/rekapan-quality/bot/internal/sheets"
)

type Handler struct {
	Bot         *bot.Handler
	Store       sheets.Store
	MasterSheet string
	Logger      zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if _, err := h.Store.Rows(ctx, h.MasterSheet); err != nil {
		writeError(c, http.StatusServiceUnavailable, "SHEET_UNAVAILABLE", "Spreadsheet unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Webhook receives one Telegram update per request. Handling errors are dealt
// with inside the bot handler; the endpoint answers 200 so Telegram does not
// redeliver the update.
func (h *Handler) Webhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		writeError(c, http.StatusBadRequest, "BAD_UPDATE", "Malformed update payload", err.Error())
		return
	}
	h.Bot.HandleUpdate(c.Request.Context(), update)
	c.Status(http.StatusOK)
}

func writeError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
