package middleware

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
)

type accessChecker interface {
	IsGranted(userID int64) bool
}

// Auth admits pre-authorized user IDs and users who redeemed an access code.
// /start and /redeem pass through so new users can get in.
func Auth(authorizedUserIDs []int64, access accessChecker) bot.Middleware {
	isOpenCommand := func(text string) bool {
		return strings.HasPrefix(text, "/start") || strings.HasPrefix(text, "/redeem")
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var userID int64
			switch {
			case update.Message != nil && update.Message.From != nil:
				userID = update.Message.From.ID
			case update.CallbackQuery != nil:
				userID = update.CallbackQuery.From.ID
			default:
				return
			}

			if lo.Contains(authorizedUserIDs, userID) || access.IsGranted(userID) {
				next(ctx, b, update)
				return
			}

			if update.Message != nil && isOpenCommand(update.Message.Text) {
				next(ctx, b, update)
				return
			}

			if update.Message != nil {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID:          update.Message.Chat.ID,
					MessageThreadID: update.Message.MessageThreadID,
					Text:            "🔒 Нет доступа. Активируйте код командой /redeem <код>.",
				})
			}
		}
	}
}
