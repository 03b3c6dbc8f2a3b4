package handlers

import (
	"bytes"
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/render"
)

const repeatButtonText = "🔁 Ещё вариант"

func repeatKeyboard(jobID int, result domain.ResultMessage) models.ReplyMarkup {
	if result.IsError {
		return nil
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: repeatButtonText, CallbackData: domain.RepeatEditCallbackPrefix + strconv.Itoa(jobID)}},
		},
	}
}

func sendResult(ctx context.Context, b *bot.Bot, chatID int64, topicID int, result domain.ResultMessage, kb models.ReplyMarkup) {
	if result.HasImage() {
		b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Photo:           &models.InputFileUpload{Filename: "pixshop.png", Data: bytes.NewReader(result.ImageData)},
			Caption:         result.Text,
			ReplyMarkup:     kb,
		})
		return
	}

	if result.IsError {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			MessageThreadID: topicID,
			Text:            result.Text,
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		MessageThreadID: topicID,
		Text:            render.ToHTML(result.Text),
		ParseMode:       models.ParseModeHTML,
		ReplyMarkup:     kb,
	})
}
