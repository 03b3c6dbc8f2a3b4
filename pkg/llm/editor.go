package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/gemini"
	"github.com/pixshop/bot/pkg/logger"
)

const defaultInstruction = "improve this image"

// captionRuneLimit caps how long an accompanying caption may be before it is
// dropped in favor of the image alone.
const captionRuneLimit = 50

const systemPreamble = "You are Pixshop, a photo editing engine. " +
	"Apply the requested edit to the attached image and return the edited image. " +
	"Do not converse and do not explain your changes."

type generationClient interface {
	GenerateContent(ctx context.Context, apiKey string, req *gemini.Request) (*gemini.Generation, error)
}

// Editor runs one logical edit operation against the generation backend,
// falling back across an ordered pool of API keys.
type Editor struct {
	client  generationClient
	apiKeys []string
}

func NewEditor(client generationClient, apiKeys []string) (*Editor, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("api key pool cannot be empty")
	}
	return &Editor{client: client, apiKeys: apiKeys}, nil
}

// Edit submits the composed request with each API key in pool order until one
// succeeds or a non-retryable failure is seen. It always returns a well-formed
// ResultMessage; failures surface as the IsError variant, never as an error.
func (e *Editor) Edit(ctx context.Context, attachments []domain.Attachment, instruction string, engine domain.Engine) domain.ResultMessage {
	req := composeRequest(attachments, instruction, engine)

	var lastErr *gemini.Error
	var attemptErrs error

	for i, apiKey := range e.apiKeys {
		gen, err := e.client.GenerateContent(ctx, apiKey, req)
		if err == nil {
			slog.InfoContext(ctx, "Generation succeeded",
				"attempt", i+1, "hasImage", len(gen.ImageData) > 0, "textLen", len(gen.Text))
			return successMessage(gen)
		}

		lastErr = classify(err)
		attemptErrs = multierror.Append(attemptErrs, err)

		slog.WarnContext(ctx, "Generation attempt failed",
			"attempt", i+1, "kind", lastErr.Kind.String(), logger.Err(err))

		if !lastErr.Kind.Retryable() {
			break
		}
	}

	slog.ErrorContext(ctx, "All generation attempts failed",
		"kind", lastErr.Kind.String(), logger.Err(attemptErrs))

	return domain.ResultMessage{
		Text:    userMessage(lastErr.Kind, engine),
		IsError: true,
	}
}

// classify folds non-transport failures into the adapter's taxonomy; anything
// unrecognized stays retryable.
func classify(err error) *gemini.Error {
	var genErr *gemini.Error
	if errors.As(err, &genErr) {
		return genErr
	}
	return &gemini.Error{Kind: gemini.KindOther, Message: err.Error()}
}

func composeRequest(attachments []domain.Attachment, instruction string, engine domain.Engine) *gemini.Request {
	if strings.TrimSpace(instruction) == "" {
		instruction = defaultInstruction
	}

	textParts := []string{systemPreamble}
	if prompt := engine.Prompt(); prompt != "" {
		textParts = append(textParts, prompt)
	}
	textParts = append(textParts, instruction)

	images := make([]gemini.Image, 0, len(attachments))
	for _, a := range attachments {
		images = append(images, gemini.Image{MimeType: a.MimeType, Data: a.Data})
	}

	// Images first, text last. Some backends are sensitive to part order.
	return &gemini.Request{
		Images: images,
		Text:   strings.Join(textParts, "\n\n"),
	}
}

func successMessage(gen *gemini.Generation) domain.ResultMessage {
	if len(gen.ImageData) == 0 {
		return domain.ResultMessage{Text: gen.Text}
	}

	msg := domain.ResultMessage{
		ImageData:     gen.ImageData,
		ImageMimeType: gen.ImageMimeType,
	}

	// Image-first product: a short caption is worth surfacing, long
	// commentary is not.
	if utf8.RuneCountInString(gen.Text) < captionRuneLimit {
		msg.Text = gen.Text
	}

	return msg
}
