package provider

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lead-connector/internal/infra/logger"
)

type TelegramProvider struct {
	Logger *logger.Logger
	API    *tgbotapi.BotAPI
}

func NewTelegramProvider(logger *logger.Logger, api *tgbotapi.BotAPI) *TelegramProvider {
	return &TelegramProvider{Logger: logger, API: api}
}

// SendTextMessage delivers a plain text message to a chat via the Bot API.
//
// Returns an error if the message is empty or the Bot API rejects the send
// (blocked bot, unknown chat). Callers decide whether a failure is fatal;
// broadcast treats it as per-recipient and keeps going.
func (tp *TelegramProvider) SendTextMessage(chatID int64, message string) error {
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	msg := tgbotapi.NewMessage(chatID, message)
	if _, err := tp.API.Send(msg); err != nil {
		tp.Logger.Error(fmt.Sprintf("Failed to send Telegram message to %d: %v", chatID, err))
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}

	return nil
}
