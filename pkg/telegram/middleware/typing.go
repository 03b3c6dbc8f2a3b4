package middleware

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Telegram drops the chat action after ~5s, so it has to be re-sent while the
// handler works.
const typingRefreshInterval = 5 * time.Second

func Typing(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			next(ctx, b, update)
			return
		}

		done := make(chan struct{})
		defer close(done)

		go func() {
			ticker := time.NewTicker(typingRefreshInterval)
			defer ticker.Stop()
			for {
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID:          update.Message.Chat.ID,
					MessageThreadID: update.Message.MessageThreadID,
					Action:          models.ChatActionUploadPhoto,
				})
				select {
				case <-done:
					return
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()

		next(ctx, b, update)
	}
}
