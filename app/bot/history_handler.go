package bot

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/rbhz/ydcv/app/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const historyLimit = 20

const historyTemplate = `<b>Recent lookups:</b>
{{- range $l := .History }}
{{ if $l.Found }}✅{{ else }}❌{{ end }} <code>{{ $l.Query | html }}</code> <i>{{ $l.Created.Format "2006-01-02 15:04" }}</i>
{{- end }}`

var historyTmpl = template.Must(template.New("history").Parse(historyTemplate))

// GetHistoryMessageText executes template with user history
func GetHistoryMessageText(history []db.Lookup) (string, error) {
	buf := &bytes.Buffer{}
	if err := historyTmpl.Execute(buf, map[string]interface{}{"History": history}); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// HistoryHandler handles /history command
type HistoryHandler struct {
	neverPassthorugh
}

// Match returns true if update is /history command
func (h HistoryHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "history"
}

// Handle sends recent lookups with clear button
func (h HistoryHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	history, err := b.DB().GetHistory(db.UserID(u.Message.From.ID), historyLimit)
	if err != nil {
		log.Error().Err(err).Int64("user", u.Message.From.ID).Msg("failed to get history")
		return
	}
	if len(history) == 0 {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "You haven't looked anything up yet"))
		return
	}
	text, err := GetHistoryMessageText(history)
	if err != nil {
		log.Error().Err(err).Int64("user", u.Message.From.ID).Msg("failed to format history")
		return
	}
	msg := tgbotapi.NewMessage(u.Message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Clear history", fmt.Sprintf("%v|clear", callbackIDHistory)),
		),
	)
	_, _ = b.Send(msg)
}

// ClearHistoryHandler handles /clear command and clear history button
type ClearHistoryHandler struct {
	neverPassthorugh
}

// Match returns true if update is /clear command or clear history callback
func (h ClearHistoryHandler) Match(u tgbotapi.Update) bool {
	if u.Message != nil {
		return u.Message.Command() == "clear"
	}
	return u.CallbackQuery != nil && u.CallbackQuery.Data == fmt.Sprintf("%v|clear", callbackIDHistory)
}

// Handle removes user history
func (h ClearHistoryHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	from := u.SentFrom()
	reply := "History cleared"
	if err := b.DB().ClearHistory(db.UserID(from.ID)); err != nil {
		log.Error().Err(err).Int64("user", from.ID).Msg("failed to clear history")
		reply = "Failed to clear history"
	}
	if u.CallbackQuery != nil {
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, reply))
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, reply))
}
