package platforms

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the subset of *tgbotapi.BotAPI the adapter needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramAdapter delivers direct messages; the endpoint is the chat id.
type TelegramAdapter struct {
	bot Sender
}

func NewTelegramAdapter(bot Sender) *TelegramAdapter {
	return &TelegramAdapter{bot: bot}
}

func (a *TelegramAdapter) Name() string {
	return "telegram"
}

func (a *TelegramAdapter) Send(ctx context.Context, endpoint string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(endpoint), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad chat id %q", ErrPermanent, endpoint)
	}
	out := tgbotapi.NewMessage(chatID, RenderHTML(msg))
	out.ParseMode = tgbotapi.ModeHTML
	out.DisableWebPagePreview = true
	if _, err := a.bot.Send(out); err != nil {
		return classifyTelegramError(err)
	}
	return nil
}

// RenderHTML formats a message for Telegram's HTML parse mode.
func RenderHTML(msg Message) string {
	var b strings.Builder
	if msg.Title != "" {
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(msg.Title))
		b.WriteString("</b>\n")
	}
	b.WriteString(html.EscapeString(msg.Text))
	for _, f := range msg.Fields {
		b.WriteString("\n• ")
		b.WriteString(html.EscapeString(f.Name))
		b.WriteString(": ")
		b.WriteString(html.EscapeString(f.Value))
	}
	return strings.TrimSpace(b.String())
}

// classifyTelegramError treats "blocked by user" and "chat not found" style
// answers as permanent.
func classifyTelegramError(err error) error {
	code := 0
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
	}
	if code == 400 || code == 403 {
		return fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	return err
}
