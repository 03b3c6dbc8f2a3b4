package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pixshop/bot/pkg/domain"
)

type repeatEditJobProvider interface {
	GetByID(ctx context.Context, id int) (*domain.EditJob, error)
}

type repeatEditSessionProvider interface {
	Get(ctx context.Context, chatID int64, topicID int) (*domain.Session, error)
}

type repeatEditService interface {
	Edit(ctx context.Context, attachments []domain.Attachment, instruction string, engine domain.Engine) domain.ResultMessage
}

// RepeatEdit re-runs a saved edit job. Generation is not deterministic, so the
// same job produces a new variant; the currently selected engine wins over the
// one the job was created with.
func RepeatEdit(
	jobProvider repeatEditJobProvider,
	sessionProvider repeatEditSessionProvider,
	editService repeatEditService,
) bot.HandlerFunc {
	parseJobID := func(jobIDRaw string) (int, error) {
		idStr := strings.TrimPrefix(jobIDRaw, domain.RepeatEditCallbackPrefix)

		id, err := strconv.Atoi(idStr)
		if err != nil {
			return 0, fmt.Errorf("invalid jobID: %s", jobIDRaw)
		}

		return id, nil
	}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := update.CallbackQuery.Message.Message.Chat.ID
		topicID := update.CallbackQuery.Message.Message.MessageThreadID

		defer b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			ShowAlert:       false,
		})

		jobID, err := parseJobID(update.CallbackQuery.Data)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось прочитать ID запроса: %s", err),
			})
			return
		}

		job, err := jobProvider.GetByID(ctx, jobID)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось найти сохранённый запрос: %s", err),
			})
			return
		}

		engine := job.Engine
		session, err := sessionProvider.Get(ctx, chatID, topicID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось получить сессию: %s", err),
			})
			return
		}
		if session != nil {
			engine = session.Engine
		}

		slog.InfoContext(ctx, "Repeating edit", "jobID", jobID, "engine", engine)

		result := editService.Edit(ctx, job.Attachments, job.Instruction, engine)

		sendResult(ctx, b, chatID, topicID, result, repeatKeyboard(jobID, result))
	}
}
