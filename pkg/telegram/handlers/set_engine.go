package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/samber/lo"
)

type setEngineSessionProvider interface {
	Get(ctx context.Context, chatID int64, topicID int) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

func SetEngine(sessionProvider setEngineSessionProvider) bot.HandlerFunc {
	parseEngine := func(engineRaw string) (domain.Engine, error) {
		if !strings.HasPrefix(engineRaw, domain.SetEngineCallbackPrefix) {
			return "", fmt.Errorf("invalid format, expected prefix '%s'", domain.SetEngineCallbackPrefix)
		}

		engine := domain.Engine(strings.TrimPrefix(engineRaw, domain.SetEngineCallbackPrefix))

		if lo.Contains(domain.SupportedEngines, engine) {
			return engine, nil
		}

		return "", errors.New("unsupported engine")
	}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.CallbackQuery.Message.Message.Chat.ID
		topicID := update.CallbackQuery.Message.Message.MessageThreadID

		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			ShowAlert:       false,
		})

		engine, err := parseEngine(update.CallbackQuery.Data)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось извлечь движок: %s", err),
			})
			return
		}

		session, err := sessionProvider.Get(ctx, chatID, topicID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				session = domain.NewSession(chatID, topicID)
			} else {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID:          chatID,
					MessageThreadID: topicID,
					Text:            fmt.Sprintf("❌ Не удалось получить сессию: %s", err),
				})
				return
			}
		}

		session.Engine = engine

		if err = sessionProvider.Save(ctx, session); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось сохранить сессию: %s", err),
			})
			return
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            "✅ Движок обработки установлен: " + engine.DisplayName(),
		})
	}
}
