// Package bot routes inbound Telegram messages to the activation-report
// commands. One message is fully processed before the next; the duplicate
// check and the append stay serialized by that single-writer handling.
package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/rekapan-quality/bot/internal/dates"
	"github.com/rekapan-quality/bot/internal/export"
	"github.com/rekapan-quality/bot/internal/extract"
	"github.com/rekapan-quality/bot/internal/models"
	"github.com/rekapan-quality/bot/internal/report"
	"github.com/rekapan-quality/bot/internal/roster"
	"github.com/rekapan-quality/bot/internal/sheets"
	"github.com/rekapan-quality/bot/internal/telegram"
)

type Handler struct {
	Store       sheets.Store
	Roster      *roster.Service
	Sender      telegram.Sender
	Logger      zerolog.Logger
	RecordSheet string
	Loc         *time.Location

	// Now is the clock; tests pin it.
	Now func() time.Time
}

var (
	cmdAktivasi    = regexp.MustCompile(`(?i)^/aktivasi\b`)
	cmdCari        = regexp.MustCompile(`(?i)^/cari\b`)
	cmdExportCari  = regexp.MustCompile(`(?i)^/exportcari\b`)
	cmdExportCSV   = regexp.MustCompile(`(?i)^/exportcsv\b`)
	cmdPS          = regexp.MustCompile(`(?i)^/ps\b`)
	cmdTopTeknisi  = regexp.MustCompile(`(?i)^/topteknisi\b`)
	cmdAllPS       = regexp.MustCompile(`(?i)^/allps\b`)
	cmdHelp        = regexp.MustCompile(`(?i)^/(help|start)\b`)
	aktivasiPrefix = regexp.MustCompile(`(?i)^/aktivasi\s*`)
)

const msgInternalError = "❌ Terjadi kesalahan sistem. Coba lagi nanti."

// HandleUpdate processes one inbound update. A failure while handling a
// single message is logged and answered with a generic message; it never
// takes the process down.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	replyTo := msg.MessageID
	text := strings.TrimSpace(msg.Text)
	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}

	defer func() {
		if r := recover(); r != nil {
			h.Logger.Error().Interface("panic", r).Int64("chat_id", chatID).Msg("message handler panicked")
			_ = h.Sender.SendText(ctx, chatID, replyTo, msgInternalError)
		}
	}()

	// Group chats only listen for /aktivasi.
	if (msg.Chat.IsGroup() || msg.Chat.IsSuperGroup()) && !cmdAktivasi.MatchString(text) {
		return
	}

	var err error
	switch {
	case cmdAktivasi.MatchString(text):
		err = h.handleAktivasi(ctx, chatID, replyTo, username, text)
	case cmdCari.MatchString(text):
		err = h.handleCari(ctx, chatID, replyTo, username)
	case cmdExportCari.MatchString(text):
		err = h.handleExport(ctx, chatID, replyTo, username, formatPDF)
	case cmdExportCSV.MatchString(text):
		err = h.handleExport(ctx, chatID, replyTo, username, formatCSV)
	case cmdPS.MatchString(text):
		err = h.handlePS(ctx, chatID, replyTo, username, args(text))
	case cmdTopTeknisi.MatchString(text):
		err = h.handleTopTeknisi(ctx, chatID, replyTo, username, args(text))
	case cmdAllPS.MatchString(text):
		err = h.handleAllPS(ctx, chatID, replyTo, username)
	case cmdHelp.MatchString(text):
		err = h.handleHelp(ctx, chatID, replyTo, username)
	case strings.HasPrefix(text, "/"):
		err = h.Sender.SendText(ctx, chatID, replyTo, "❓ Command tidak dikenali. Ketik /help untuk bantuan.")
	default:
		return
	}

	if err != nil {
		h.Logger.Error().Err(err).Int64("chat_id", chatID).Str("user", username).Msg("command failed")
		_ = h.Sender.SendText(ctx, chatID, replyTo, msgInternalError)
	}
}

func (h *Handler) handleAktivasi(ctx context.Context, chatID int64, replyTo int, username, text string) error {
	if username == "" {
		return h.Sender.SendText(ctx, chatID, replyTo,
			"❌ Anda harus memiliki username Telegram.\nSilakan atur username di pengaturan Telegram Anda.")
	}

	entry, err := h.Roster.Lookup(ctx, username)
	if err != nil {
		return err
	}
	if entry == nil {
		return h.Sender.SendText(ctx, chatID, replyTo,
			fmt.Sprintf("❌ @%s tidak terdaftar di MASTER sheet.\nSilakan hubungi admin.", username))
	}

	input := strings.TrimSpace(aktivasiPrefix.ReplaceAllString(text, ""))
	if input == "" {
		return h.Sender.SendText(ctx, chatID, replyTo, "Silakan kirim data aktivasi setelah /aktivasi")
	}

	rec := extract.Extract(extract.Activation, input, entry, username, h.Now().In(h.Loc))
	if rec.AO == "" {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Field AO wajib diisi.")
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}
	for _, existing := range records {
		if strings.EqualFold(strings.TrimSpace(existing.AO), strings.TrimSpace(rec.AO)) {
			return h.Sender.SendText(ctx, chatID, replyTo, "❌ Data duplikat. AO sudah diinput sebelumnya.")
		}
	}

	if err := h.Store.Append(ctx, h.RecordSheet, rec.Row()); err != nil {
		return err
	}

	h.Logger.Info().Str("ao", rec.AO).Str("teknisi", rec.Teknisi).Msg("activation stored")
	return h.Sender.SendText(ctx, chatID, replyTo,
		"✅ Data berhasil disimpan!\n<b>Lanjut GROUP FULFILLMENT dan PT1</b> 🚀")
}

func (h *Handler) handleCari(ctx context.Context, chatID int64, replyTo int, username string) error {
	entry, err := h.Roster.Lookup(ctx, username)
	if err != nil {
		return err
	}
	if entry == nil {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Anda tidak terdaftar sebagai user aktif.")
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}
	summary := report.Aggregate(records, nil, identity(entry, username), h.Loc)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>STATISTIK AKTIVASI</b>\n👤 Teknisi: %s\n📈 Total: %d SSL\n\n", displayName(entry, username), summary.Total)
	if summary.Total == 0 {
		b.WriteString("⚠️ Belum ada data aktivasi.\n")
	} else {
		b.WriteString("<b>Per Channel:</b>\n")
		writeBullets(&b, summary.ByChannel.Entries())
		b.WriteString("\n<b>Per Workzone:</b>\n")
		writeBullets(&b, summary.ByWorkzone.Entries())
		b.WriteString("\n💾 <i>Gunakan /exportcari (PDF) atau /exportcsv untuk download data lengkap</i>\n")
	}
	fmt.Fprintf(&b, "\n📅 %s WIB", dates.FormatStamp(h.Now().In(h.Loc)))
	return h.Sender.SendText(ctx, chatID, replyTo, b.String())
}

type exportFormat string

const (
	formatPDF exportFormat = "pdf"
	formatCSV exportFormat = "csv"
)

func (h *Handler) handleExport(ctx context.Context, chatID int64, replyTo int, username string, format exportFormat) error {
	entry, err := h.Roster.Lookup(ctx, username)
	if err != nil {
		return err
	}
	if entry == nil {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Anda tidak terdaftar sebagai user aktif.")
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}

	me := identity(entry, username)
	var rows [][]string
	for _, rec := range records {
		if report.NormalizeHandle(rec.Teknisi) == me {
			rows = append(rows, rec.Row())
		}
	}
	if len(rows) == 0 {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Tidak ada data aktivasi untuk diekspor.")
	}

	now := h.Now().In(h.Loc)
	filename := fmt.Sprintf("aktivasi_%s_%s.%s", me, now.Format("2006-01-02"), format)

	var data []byte
	switch format {
	case formatPDF:
		data, err = export.PDF("DATA AKTIVASI", models.RecordHeader, rows, now)
	case formatCSV:
		data, err = export.CSV(models.RecordHeader, rows)
	}
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("📄 File %s berhasil digenerate!\nFilename: %s", strings.ToUpper(string(format)), filename)
	return h.Sender.SendFile(ctx, chatID, replyTo, filename, data, caption)
}

func (h *Handler) handlePS(ctx context.Context, chatID int64, replyTo int, username string, args []string) error {
	if !h.Roster.IsAdmin(ctx, username) {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Hanya admin yang bisa menggunakan command ini.")
	}

	customDate := ""
	if len(args) > 0 {
		customDate = args[0]
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}
	now := h.Now().In(h.Loc)
	window := report.Resolve(report.PeriodDaily, customDate, now, h.Loc)
	summary := report.Aggregate(records, window, "", h.Loc)

	dateLabel := customDate
	if dateLabel == "" {
		dateLabel = dates.FormatLong(now)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>LAPORAN HARIAN</b>\nTanggal: %s\nTotal: %d SSL\n\n", dateLabel, summary.Total)
	if summary.Total == 0 {
		b.WriteString("⚠️ Tidak ada data.\n")
	} else {
		fmt.Fprintf(&b, "Teknisi Aktif: %d\n", summary.ByTechnician.Len())
		fmt.Fprintf(&b, "Workzone: %d\n", summary.ByWorkzone.Len())
		fmt.Fprintf(&b, "Channel: %d\n\n", summary.ByChannel.Len())

		b.WriteString("<b>TOP TEKNISI:</b>\n")
		ranked, _ := report.RankPlain(summary.ByTechnician.Entries(), 10)
		for _, r := range ranked {
			fmt.Fprintf(&b, "%s %s: %d SSL\n", r.Marker, r.Label, r.Count)
		}

		b.WriteString("\n<b>PERFORMA WORKZONE:</b>\n")
		ranked, _ = report.RankPlain(summary.ByWorkzone.Entries(), 0)
		for _, r := range ranked {
			fmt.Fprintf(&b, "%s %s: %d SSL\n", r.Marker, r.Label, r.Count)
		}

		b.WriteString("\n<b>PERFORMA OWNER:</b>\n")
		ranked, _ = report.RankPlain(summary.ByChannel.Entries(), 0)
		for _, r := range ranked {
			fmt.Fprintf(&b, "%s %s: %d SSL\n", r.Marker, r.Label, r.Count)
		}
	}
	fmt.Fprintf(&b, "\n⏰ %s WIB", dates.FormatStamp(now))
	return h.Sender.SendText(ctx, chatID, replyTo, b.String())
}

func (h *Handler) handleTopTeknisi(ctx context.Context, chatID int64, replyTo int, username string, args []string) error {
	if !h.Roster.IsAdmin(ctx, username) {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Hanya admin yang bisa menggunakan command ini.")
	}

	period := report.PeriodAll
	customDate := ""
	if len(args) > 0 {
		period = report.ParsePeriod(strings.ToLower(args[0]))
	}
	if len(args) > 1 {
		customDate = args[1]
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}
	now := h.Now().In(h.Loc)
	window := report.Resolve(period, customDate, now, h.Loc)
	summary := report.Aggregate(records, window, "", h.Loc)

	entries := report.WithoutSentinel(summary.ByTechnician.Entries())
	ranked, remainder := report.Rank(entries, 20)

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 <b>RANKING TEKNISI</b>\nPeriode: %s\n\n", periodLabel(period, customDate))
	if len(ranked) == 0 {
		b.WriteString("⚠️ Belum ada data.\n")
	} else {
		fmt.Fprintf(&b, "Total Teknisi: %d\n\n", len(entries))
		b.WriteString("<b>TOP 20:</b>\n")
		for _, r := range ranked {
			fmt.Fprintf(&b, "%s %s: <b>%d SSL</b>\n", r.Marker, r.Label, r.Count)
		}
		if remainder > 0 {
			fmt.Fprintf(&b, "\n... dan %d teknisi lainnya\n", remainder)
		}
	}
	fmt.Fprintf(&b, "\n⏰ %s WIB", dates.FormatStamp(now))
	return h.Sender.SendText(ctx, chatID, replyTo, b.String())
}

func (h *Handler) handleAllPS(ctx context.Context, chatID int64, replyTo int, username string) error {
	if !h.Roster.IsAdmin(ctx, username) {
		return h.Sender.SendText(ctx, chatID, replyTo, "❌ Hanya admin yang bisa menggunakan command ini.")
	}

	records, err := h.records(ctx)
	if err != nil {
		return err
	}
	summary := report.Aggregate(records, nil, "", h.Loc)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>RINGKASAN AKTIVASI TOTAL</b>\nTOTAL KESELURUHAN: %d SSL\n\n", summary.Total)

	b.WriteString("<b>BERDASARKAN CHANNEL:</b>\n")
	writeBullets(&b, summary.ByChannel.Entries())
	b.WriteString("\n<b>BERDASARKAN WORKZONE:</b>\n")
	writeBullets(&b, summary.ByWorkzone.Entries())

	b.WriteString("\n<b>TOP 5 TEKNISI:</b>\n")
	ranked, _ := report.RankPlain(summary.ByTechnician.Entries(), 5)
	for _, r := range ranked {
		fmt.Fprintf(&b, "%s %s: %d\n", r.Marker, r.Label, r.Count)
	}

	fmt.Fprintf(&b, "\n⏰ %s WIB", dates.FormatStamp(h.Now().In(h.Loc)))
	return h.Sender.SendText(ctx, chatID, replyTo, b.String())
}

func (h *Handler) handleHelp(ctx context.Context, chatID int64, replyTo int, username string) error {
	var b strings.Builder
	b.WriteString("🤖 <b>Bot Rekapan Quality</b>\n\n")
	b.WriteString("<b>📝 Commands User:</b>\n")
	b.WriteString("• <code>/aktivasi [data]</code> - Input aktivasi\n")
	b.WriteString("• <code>/cari</code> - Statistik Anda\n")
	b.WriteString("• <code>/exportcari</code> - Download data aktivasi (PDF)\n")
	b.WriteString("• <code>/exportcsv</code> - Download data aktivasi (CSV)\n")
	b.WriteString("• <code>/help</code> - Bantuan\n\n")

	if h.Roster.IsAdmin(ctx, username) {
		b.WriteString("<b>👑 Admin Commands:</b>\n")
		b.WriteString("• <code>/ps</code> - Laporan harian\n")
		b.WriteString("• <code>/ps [dd/mm/yyyy]</code> - Laporan tanggal custom\n")
		b.WriteString("• <code>/topteknisi [periode] [tanggal]</code> - Ranking teknisi\n")
		b.WriteString("   Periode: all, daily, weekly, monthly\n")
		b.WriteString("• <code>/allps</code> - Ringkasan total\n\n")
	}

	b.WriteString("<b>📊 Format Input:</b>\n")
	b.WriteString("<code>AO : [value]\nCHANNEL : [value]\nSERVICE NO : [value]\n... (dan field lainnya)</code>\n\n")
	b.WriteString("🚀 Bot siap membantu aktivasi Anda!")
	return h.Sender.SendText(ctx, chatID, replyTo, b.String())
}

// records loads the REKAPAN sheet, skipping the header row.
func (h *Handler) records(ctx context.Context) ([]models.ActivationRecord, error) {
	rows, err := h.Store.Rows(ctx, h.RecordSheet)
	if err != nil {
		return nil, err
	}
	out := make([]models.ActivationRecord, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		out = append(out, models.RecordFromRow(rows[i]))
	}
	return out, nil
}

func identity(entry *models.RosterEntry, username string) string {
	if entry != nil && entry.Handle != "" {
		return report.NormalizeHandle(entry.Handle)
	}
	return report.NormalizeHandle(username)
}

func displayName(entry *models.RosterEntry, username string) string {
	if entry != nil && entry.Handle != "" {
		return entry.Handle
	}
	return username
}

func args(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func writeBullets(b *strings.Builder, entries []report.Entry) {
	ranked, _ := report.RankPlain(entries, 0)
	for _, r := range ranked {
		fmt.Fprintf(b, "• %s: %d\n", r.Label, r.Count)
	}
}

func periodLabel(period report.Period, customDate string) string {
	switch period {
	case report.PeriodDaily:
		if customDate != "" {
			return fmt.Sprintf("Harian (%s)", customDate)
		}
		return "Hari ini"
	case report.PeriodWeekly:
		if customDate != "" {
			return fmt.Sprintf("Mingguan (%s)", customDate)
		}
		return "Minggu ini"
	case report.PeriodMonthly:
		if customDate != "" {
			return fmt.Sprintf("Bulanan (%s)", customDate)
		}
		return "Bulan ini"
	default:
		return "Keseluruhan"
	}
}
