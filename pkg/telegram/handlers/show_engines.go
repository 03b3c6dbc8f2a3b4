package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/samber/lo"
)

func ShowEngines() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		buttons := lo.Map(domain.SupportedEngines, func(engine domain.Engine, _ int) models.InlineKeyboardButton {
			return models.InlineKeyboardButton{
				Text:         engine.DisplayName(),
				CallbackData: domain.SetEngineCallbackPrefix + string(engine),
			}
		})

		kb := &models.InlineKeyboardMarkup{
			InlineKeyboard: lo.Chunk(buttons, 2), // 2 buttons in a row
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "🎨 Выберите движок обработки:",
			ReplyMarkup:     kb,
		})
	}
}
