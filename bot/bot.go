package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sparkmeals/config"
	"sparkmeals/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sendTimeout bounds every Bot API round trip; the library itself has no deadline.
const sendTimeout = 10 * time.Second

// StaffBot sends order cards to the kitchen chat (MESSAGE_TOKEN, ADMIN_ID).
type StaffBot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func New(cfg config.TelegramConfig) (*StaffBot, error) {
	return NewWithEndpoint(cfg, tgbotapi.APIEndpoint, &http.Client{Timeout: sendTimeout})
}

// NewWithEndpoint talks to a custom Bot API endpoint, e.g. a local Bot API server.
func NewWithEndpoint(cfg config.TelegramConfig, endpoint string, client *http.Client) (*StaffBot, error) {
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.MessageToken, endpoint, client)
	if err != nil {
		return nil, err
	}
	return &StaffBot{api: api, chatID: cfg.AdminChatID}, nil
}

// NotifyOrder sends the card as a new message and gives up when ctx is done.
// An abandoned send still ends within the client timeout.
func (b *StaffBot) NotifyOrder(ctx context.Context, card services.OrderCardContent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, card.Text)
	if kb, ok := staffKeyboard(card.Buttons); ok {
		msg.ReplyMarkup = kb
	}

	done := make(chan error, 1)
	go func() {
		_, err := b.api.Send(msg)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram send chat_id=%d: %w", b.chatID, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send chat_id=%d: %w", b.chatID, ctx.Err())
	}
}

// staffKeyboard keeps URL and callback buttons, dropping rows left empty.
func staffKeyboard(rows [][]services.OrderCardButton) (tgbotapi.InlineKeyboardMarkup, bool) {
	var kb tgbotapi.InlineKeyboardMarkup
	for _, row := range rows {
		var line []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			switch {
			case btn.URL != "":
				line = append(line, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
			case btn.CallbackData != "":
				line = append(line, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
			}
		}
		if len(line) > 0 {
			kb.InlineKeyboard = append(kb.InlineKeyboard, line)
		}
	}
	return kb, len(kb.InlineKeyboard) > 0
}
