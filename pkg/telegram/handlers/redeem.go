package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

type redeemAccessGranter interface {
	Grant(userID int64)
}

func Redeem(accessCodes []string, granter redeemAccessGranter) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID

		code := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/redeem"))
		if code == "" {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "🔑 Использование: /redeem <код>",
			})
			return
		}

		if !lo.Contains(accessCodes, code) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "❌ Неверный код доступа.",
			})
			return
		}

		granter.Grant(update.Message.From.ID)
		slog.InfoContext(ctx, "Access code redeemed", "userID", update.Message.From.ID)

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "✅ Код активирован! Пришлите фото с инструкцией.",
		})
	}
}
