package publishers

import (
	"context"
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/samvad-hq/coingecko-harvester/internal/logger"
)

const telegramTokenEnv = "TELEGRAM_BOT_TOKEN"

// telegramSender is satisfied by *tgbotapi.BotAPI.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramPublisher struct {
	id     string
	chatID int64
	silent bool
	bot    telegramSender
	log    logger.Logger
}

func newTelegramPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.Telegram == nil {
		return nil, fmt.Errorf("publisher %q missing telegram configuration", cfg.ID)
	}

	token := cfg.Telegram.BotToken
	if token == "" {
		token = strings.TrimSpace(os.Getenv(telegramTokenEnv))
	}
	if token == "" {
		return nil, fmt.Errorf("publisher %q: telegram.bot_token or %s is required", cfg.ID, telegramTokenEnv)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &telegramPublisher{
		id:     cfg.ID,
		chatID: cfg.Telegram.ChatID,
		silent: cfg.Telegram.Silent,
		bot:    bot,
		log:    logger.Ensure(log),
	}, nil
}

func (t *telegramPublisher) ID() string   { return t.id }
func (t *telegramPublisher) Type() string { return TypeTelegram }

// Publish ignores ctx; the bot API client has no per-call context.
func (t *telegramPublisher) Publish(_ context.Context, evt Event) error {
	msg := tgbotapi.NewMessage(t.chatID, telegramText(evt))
	msg.DisableNotification = t.silent
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.log.ErrorObj("telegram publisher send failed", "publisher_telegram_error", map[string]any{
			"publisher_id": t.id,
			"error":        err.Error(),
		})
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func telegramText(evt Event) string {
	m := evt.Market
	currency := strings.ToUpper(evt.VsCurrency)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", m.Name, strings.ToUpper(m.Symbol))
	if m.MarketCapRank != nil {
		fmt.Fprintf(&b, " #%d", *m.MarketCapRank)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Price: %s %s\n", m.CurrentPrice.String(), currency)
	fmt.Fprintf(&b, "24h: %s%%\n", m.PriceChangePercentage24h.StringFixed(2))
	fmt.Fprintf(&b, "Market cap: %s %s\n", m.MarketCap.String(), currency)
	name := evt.WatchlistName
	if name == "" {
		name = evt.WatchlistID
	}
	fmt.Fprintf(&b, "Watchlist: %s", name)
	return b.String()
}
