package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rekapan-quality/bot/internal/bot"
	"github.com/rekapan-quality/bot/internal/dates"
	"github.com/rekapan-quality/bot/internal/http/middleware"
	"github.com/rekapan-quality/bot/internal/models"
	"github.com/rekapan-quality/bot/internal/roster"
	"github.com/rekapan-quality/bot/internal/sheets"
)

type nopSender struct{ texts []string }

func (n *nopSender) SendText(ctx context.Context, chatID int64, replyTo int, text string) error {
	n.texts = append(n.texts, text)
	return nil
}

func (n *nopSender) SendFile(ctx context.Context, chatID int64, replyTo int, filename string, data []byte, caption string) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *sheets.MemoryStore, *nopSender) {
	t.Helper()
	store := sheets.NewMemory()
	master := make([]string, 11)
	master[8] = "@budi"
	master[9] = "USER"
	master[10] = "AKTIF"
	store.Seed("MASTER", [][]string{make([]string, 11), master})
	store.Seed("REKAPAN QUALITY", [][]string{models.RecordHeader})

	sender := &nopSender{}
	loc := dates.Jakarta()
	h := &Handler{
		Bot: &bot.Handler{
			Store:       store,
			Roster:      &roster.Service{Store: store, Sheet: "MASTER"},
			Sender:      sender,
			Logger:      zerolog.Nop(),
			RecordSheet: "REKAPAN QUALITY",
			Loc:         loc,
			Now:         func() time.Time { return time.Date(2024, time.June, 12, 9, 0, 0, 0, loc) },
		},
		Store:       store,
		MasterSheet: "MASTER",
		Logger:      zerolog.Nop(),
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.POST("/telegram/webhook", middleware.WebhookSecret("hook-secret"), h.Webhook)
	return r, store, sender
}

func TestHealthz(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestWebhookStoresActivation(t *testing.T) {
	r, store, sender := newTestRouter(t)
	body := `{"update_id":1,"message":{"message_id":7,"from":{"id":1,"username":"budi"},"chat":{"id":42,"type":"private"},"text":"/aktivasi AO : X77"}}`
	req, _ := http.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SecretTokenHeader, "hook-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rows, err := store.Rows(context.Background(), "REKAPAN QUALITY")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected stored record, got %d rows", len(rows))
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "berhasil") {
		t.Fatalf("expected confirmation, got %v", sender.texts)
	}
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	r, store, _ := newTestRouter(t)
	body := `{"update_id":1}`
	req, _ := http.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	rows, _ := store.Rows(context.Background(), "REKAPAN QUALITY")
	if len(rows) != 1 {
		t.Fatal("store must stay unchanged")
	}
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	r, _, _ := newTestRouter(t)
	req, _ := http.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SecretTokenHeader, "hook-secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
