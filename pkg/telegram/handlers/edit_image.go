package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/samber/lo"
)

type editImageSessionProvider interface {
	Get(ctx context.Context, chatID int64, topicID int) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

type editImageJobSaver interface {
	Save(ctx context.Context, job *domain.EditJob) error
}

type editImageService interface {
	Edit(ctx context.Context, attachments []domain.Attachment, instruction string, engine domain.Engine) domain.ResultMessage
}

// EditImage is the default handler: one or more attached images plus a caption
// instruction go to the edit service, the outcome comes back into the chat.
func EditImage(
	sessionProvider editImageSessionProvider,
	jobSaver editImageJobSaver,
	editService editImageService,
) bot.HandlerFunc {
	getFileAsBytes := func(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
		file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
		if err != nil {
			return nil, fmt.Errorf("fetching file metadata: %w", err)
		}

		resp, err := http.Get(b.FileDownloadLink(file))
		if err != nil {
			return nil, fmt.Errorf("downloading file: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("downloading file: unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	}

	// Telegram photos are always jpeg; image documents carry their own mime.
	imageRefs := func(msg *models.Message) []struct{ fileID, mimeType string } {
		var refs []struct{ fileID, mimeType string }
		if msg == nil {
			return refs
		}
		if len(msg.Photo) > 0 {
			largest := msg.Photo[len(msg.Photo)-1]
			refs = append(refs, struct{ fileID, mimeType string }{largest.FileID, "image/jpeg"})
		}
		if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
			refs = append(refs, struct{ fileID, mimeType string }{msg.Document.FileID, msg.Document.MimeType})
		}
		return refs
	}

	collectAttachments := func(ctx context.Context, b *bot.Bot, msg *models.Message) ([]domain.Attachment, error) {
		refs := imageRefs(msg)
		if len(refs) == 0 {
			// Editing a previous result: reply to it with a new instruction.
			refs = imageRefs(msg.ReplyToMessage)
		}

		attachments := make([]domain.Attachment, 0, len(refs))
		for _, ref := range refs {
			data, err := getFileAsBytes(ctx, b, ref.fileID)
			if err != nil {
				return nil, err
			}
			attachments = append(attachments, domain.Attachment{
				ID:       uuid.NewString(),
				Data:     data,
				MimeType: ref.mimeType,
			})
		}
		return attachments, nil
	}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}

		chatID := update.Message.Chat.ID
		topicID := update.Message.MessageThreadID
		instruction := lo.CoalesceOrEmpty(update.Message.Caption, update.Message.Text)

		attachments, err := collectAttachments(ctx, b, update.Message)
		if err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось получить изображение: %s", err),
			})
			return
		}

		// The edit service assumes at least one attachment; the "image
		// required" rule is enforced here.
		if len(attachments) == 0 {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            "🖼 Прикрепите изображение к инструкции — я умею только редактировать фото. Или ответьте на сообщение с фото.",
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

		job := &domain.EditJob{
			Instruction: instruction,
			Engine:      session.Engine,
			Attachments: attachments,
		}
		if err := jobSaver.Save(ctx, job); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:          chatID,
				MessageThreadID: topicID,
				Text:            fmt.Sprintf("❌ Не удалось сохранить запрос: %s", err),
			})
			return
		}

		slog.InfoContext(ctx, "Running edit",
			"engine", session.Engine, "attachments", len(attachments), "jobID", job.ID)

		result := editService.Edit(ctx, attachments, instruction, session.Engine)

		session.Append(userHistoryMessage(instruction, attachments))
		session.Append(resultHistoryMessage(result))
		if err := sessionProvider.Save(ctx, session); err != nil {
			slog.WarnContext(ctx, "Saving session failed", "chatID", chatID, "topicID", topicID)
		}

		sendResult(ctx, b, chatID, topicID, result, repeatKeyboard(job.ID, result))
	}
}

func userHistoryMessage(instruction string, attachments []domain.Attachment) domain.Message {
	parts := make([]domain.ContentPart, 0, len(attachments)+1)
	for _, a := range attachments {
		parts = append(parts, domain.ContentPart{
			Type: domain.ContentPartTypeImage,
			Data: domain.ResultMessage{ImageData: a.Data, ImageMimeType: a.MimeType}.ImageDataURI(),
		})
	}
	if instruction != "" {
		parts = append(parts, domain.ContentPart{Type: domain.ContentPartTypeText, Data: instruction})
	}
	return domain.Message{Role: domain.MessageRoleUser, ContentParts: parts}
}

func resultHistoryMessage(result domain.ResultMessage) domain.Message {
	var parts []domain.ContentPart
	if result.HasImage() {
		parts = append(parts, domain.ContentPart{Type: domain.ContentPartTypeImage, Data: result.ImageDataURI()})
	}
	if result.Text != "" {
		parts = append(parts, domain.ContentPart{Type: domain.ContentPartTypeText, Data: result.Text})
	}
	return domain.Message{Role: domain.MessageRoleEngine, ContentParts: parts}
}
