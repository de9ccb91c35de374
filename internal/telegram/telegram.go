// Package telegram wraps outbound Bot API delivery: HTML messages chunked
// under the length ceiling, document uploads, and bounded retry with linear
// backoff.
package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const (
	// Telegram caps messages at 4096 chars; chunk a bit under it so HTML
	// tags near the boundary survive.
	maxMessageLen = 4000
	maxRetries    = 3
	retryStep     = time.Second
)

type Sender interface {
	SendText(ctx context.Context, chatID int64, replyTo int, text string) error
	SendFile(ctx context.Context, chatID int64, replyTo int, filename string, data []byte, caption string) error
}

type BotSender struct {
	API    *tgbotapi.BotAPI
	Logger zerolog.Logger
}

// SendText delivers text as HTML, splitting on line boundaries when it
// exceeds the ceiling. Each chunk is retried independently.
func (s *BotSender) SendText(ctx context.Context, chatID int64, replyTo int, text string) error {
	for _, chunk := range ChunkText(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyToMessageID = replyTo
		if err := s.sendWithRetry(ctx, chatID, msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *BotSender) SendFile(ctx context.Context, chatID int64, replyTo int, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	doc.ReplyToMessageID = replyTo
	return s.sendWithRetry(ctx, chatID, doc)
}

func (s *BotSender) sendWithRetry(ctx context.Context, chatID int64, msg tgbotapi.Chattable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.Logger.Warn().Err(err).Int64("chat_id", chatID).Int("attempt", attempt).Msg("retrying delivery")
			select {
			case <-time.After(retryStep * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if _, err = s.API.Send(msg); err == nil {
			return nil
		}
	}
	return err
}

// ChunkText splits text into pieces no longer than limit, breaking on line
// boundaries. A single line longer than the limit becomes its own chunk.
func ChunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if b.Len() > 0 && b.Len()+len(line)+1 > limit {
			chunks = append(chunks, strings.TrimRight(b.String(), "\n"))
			b.Reset()
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) != "" {
		chunks = append(chunks, strings.TrimRight(b.String(), "\n"))
	}
	return chunks
}
