package events

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Skotchmaster/campus_bites/pkg/logging"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pings the kitchen chat about new orders. Status changes
// are made by the kitchen itself and are not echoed back.
type TelegramNotifier struct {
	bot    sender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	client := &http.Client{Timeout: publishTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// Publish sends the notification and gives up when ctx ends. The bot
// client has no context support, so an abandoned send finishes in the
// background bounded by the client timeout.
func (n *TelegramNotifier) Publish(ctx context.Context, e Event) error {
	if e.Type != OrderCreated {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, FormatNewOrder(e)))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram: send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram: %w", ctx.Err())
	}
}

// Run delivers events from updates until ctx ends or updates is closed.
// It is fed from a Hub subscription so checkout never waits on Telegram.
func (n *TelegramNotifier) Run(ctx context.Context, updates <-chan Event) {
	l := logging.FromContext(ctx).With("component", "telegram")
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-updates:
			if !ok {
				return
			}
			sendCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := n.Publish(sendCtx, e); err != nil {
				l.Warn("telegram_notify_error", "order_id", e.OrderID, "error", err)
			}
			cancel()
		}
	}
}

func FormatNewOrder(e Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%s\n", e.TokenNumber)
	if e.ItemCount == 1 {
		b.WriteString("1 item")
	} else {
		fmt.Fprintf(&b, "%d items", e.ItemCount)
	}
	fmt.Fprintf(&b, ", total ₹%s", e.Total.StringFixed(2))
	if e.PaymentMethod != "" {
		fmt.Fprintf(&b, " (%s)", strings.ToUpper(e.PaymentMethod))
	}
	return b.String()
}
