package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/samvad-hq/coingecko-harvester/internal/logger"
)

type fakeTelegram struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, f.err
}

func TestTelegramPublisherSendsSummary(t *testing.T) {
	bot := &fakeTelegram{}
	pub := &telegramPublisher{id: "tg", chatID: -100123, silent: true, bot: bot, log: logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(bot.sent))
	}
	msg := bot.sent[0]
	if msg.ChatID != -100123 || !msg.DisableNotification {
		t.Fatalf("unexpected chat settings: %+v", msg.BaseChat)
	}
	for _, want := range []string{"Bitcoin (BTC) #1", "Price: 64000.5 USD", "24h: -1.23%", "Watchlist: Top coins"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("message %q missing %q", msg.Text, want)
		}
	}
}

func TestTelegramPublisherSendError(t *testing.T) {
	bot := &fakeTelegram{err: errors.New("forbidden")}
	pub := &telegramPublisher{id: "tg", chatID: 1, bot: bot, log: logger.NopLogger{}}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTelegramPublisherRequiresToken(t *testing.T) {
	t.Setenv(telegramTokenEnv, "")
	_, err := newTelegramPublisher(context.Background(), PublisherConfig{
		ID:       "tg",
		Type:     TypeTelegram,
		Telegram: &TelegramConfig{ChatID: 1},
	}, nil)
	if err == nil {
		t.Fatalf("expected error without a bot token")
	}
}
