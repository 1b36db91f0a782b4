package bot

import (
	"context"
	"strings"

	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/formatters"
	"github.com/rbhz/ydcv/app/lookup"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// maxQueryLength is the longest text sent to dictionary
const maxQueryLength = 200

// LookupHandler handles lookup requests
type LookupHandler struct {
	service lookup.Service
	neverPassthorugh
}

// Match returns true if message is a text
func (h LookupHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && strings.TrimSpace(u.Message.Text) != "" && !u.Message.IsCommand()
}

// Handle looks text up and sends explanation to user
func (h LookupHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	text := strings.TrimSpace(u.Message.Text)
	if len([]rune(text)) > maxQueryLength {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Sorry, the text is too long"))
		return
	}
	userID := db.UserID(u.Message.From.ID)
	resp, err := h.service.Lookup(ctx, userID, text)
	if err != nil {
		log.Error().Err(err).Str("word", text).Int64("user", int64(userID)).Msg("failed to look up")
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Sorry, dictionary is unavailable now"))
		return
	}
	msg := tgbotapi.NewMessage(u.Message.Chat.ID, resp.Explain(formatters.HTMLFormatter{}))
	msg.ParseMode = tgbotapi.ModeHTML
	_, _ = b.Send(msg)
}

// NewLookupHandler creates new lookup handler
func NewLookupHandler(service lookup.Service) LookupHandler {
	return LookupHandler{service: service}
}
