package scheduler

import (
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers reminder texts over the Bot API. The HTTP client
// carries a hard timeout; a timed-out send is an ordinary delivery failure.
type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(token string, timeout time.Duration) (*TelegramSender, error) {
	client := &http.Client{Timeout: timeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, err
	}
	return &TelegramSender{bot: bot}, nil
}

func (s *TelegramSender) Send(chatID int64, text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
