package platforms

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestTelegramAdapterSendsHTML(t *testing.T) {
	sender := &fakeSender{}
	adapter := NewTelegramAdapter(sender)

	err := adapter.Send(context.Background(), "12345", Message{
		Title:  "Your pet left",
		Text:   "Rex <gecko> ran away after 48h without care",
		Fields: []Field{{Name: "pet", Value: "Rex"}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.ChatID != 12345 || msg.ParseMode != tgbotapi.ModeHTML {
		t.Fatalf("unexpected message config: %+v", msg)
	}
	if !strings.HasPrefix(msg.Text, "<b>Your pet left</b>") || !strings.Contains(msg.Text, "&lt;gecko&gt;") {
		t.Fatalf("unexpected text %q", msg.Text)
	}
}

func TestTelegramAdapterBlockedIsPermanent(t *testing.T) {
	sender := &fakeSender{err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}
	adapter := NewTelegramAdapter(sender)

	err := adapter.Send(context.Background(), "7", Message{Text: "hi"})
	if !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected ErrPermanent, got %v", err)
	}

	sender.err = errors.New("connection reset")
	err = adapter.Send(context.Background(), "7", Message{Text: "hi"})
	if err == nil || errors.Is(err, ErrPermanent) {
		t.Fatalf("network error should be retryable, got %v", err)
	}
}

func TestTelegramAdapterRejectsBadEndpoint(t *testing.T) {
	adapter := NewTelegramAdapter(&fakeSender{})
	if err := adapter.Send(context.Background(), "not-a-chat", Message{Text: "x"}); !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected ErrPermanent, got %v", err)
	}
}
