package services

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
)

type telegramBot struct {
	bot *bot.Bot
}

func NewTelegramBot(b *bot.Bot) (*telegramBot, error) {
	if b == nil {
		return nil, errors.New("bot cannot be nil")
	}
	return &telegramBot{bot: b}, nil
}

func (t *telegramBot) Name() string { return "telegram bot" }

func (t *telegramBot) Start(ctx context.Context) error {
	t.bot.Start(ctx)
	return nil
}
