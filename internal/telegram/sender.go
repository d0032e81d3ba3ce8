package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender implements app.Messenger on top of the Telegram Bot API. Answer
// options become one inline-keyboard button per row, with the option text
// carried verbatim in the callback data so grading can compare it directly.
type Sender struct {
	api *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

func (s *Sender) SendText(_ context.Context, userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) SendQuestion(_ context.Context, userID int64, text string, options []string) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, option := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, answerCallbackPrefix+option),
		))
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := s.api.Send(msg)
	return err
}
