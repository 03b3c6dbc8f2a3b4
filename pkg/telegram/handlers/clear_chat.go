package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type chatClearer interface {
	DeleteMessages(ctx context.Context, chatID int64, topicID int) error
}

func ClearChat(clearer chatClearer) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		slog.InfoContext(ctx, "Clearing chat")

		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		if err := clearer.DeleteMessages(ctx, chatID, topicID); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось очистить чат: %+v", err),
			})
			return
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "🧹 История очищена! Пришлите новое фото. 🚀",
		})
	}
}
