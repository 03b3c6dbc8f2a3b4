package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Request is a single composed generation request: image payloads in their
// original order followed by one instruction text.
type Request struct {
	Images []Image
	Text   string
}

type Image struct {
	MimeType string
	Data     []byte
}

// Generation is the normalized successful outcome of one attempt: at most one
// image payload and at most one text payload, extracted and validated here.
type Generation struct {
	ImageData     []byte
	ImageMimeType string
	Text          string
}

type client struct {
	baseURL string
	model   string
	hc      *http.Client
}

func NewClient(model string) (*client, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}
	return &client{
		baseURL: defaultBaseURL,
		model:   model,
		hc:      &http.Client{},
	}, nil
}

// GenerateContent submits the request with the given API key and returns
// either a normalized Generation or a classified *Error.
func (c *client) GenerateContent(ctx context.Context, apiKey string, genReq *Request) (*Generation, error) {
	parts := make([]part, 0, len(genReq.Images)+1)
	for _, img := range genReq.Images {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}
	parts = append(parts, part{Text: genReq.Text})

	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return nil, newError(KindOther, "marshaling request: %v", err)
	}

	generateURL := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, generateURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, newError(KindOther, "creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, newError(KindUnavailable, "HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindUnavailable, "reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, respBody)
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, newError(KindOther, "parsing response: %v", err)
	}

	return extractGeneration(&genResp)
}

func classifyStatus(statusCode int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return newError(KindUnavailable, "rate limited (%d): %s", statusCode, msg)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		// A rejected key says nothing about the other keys in the pool.
		return newError(KindUnavailable, "credential rejected (%d): %s", statusCode, msg)
	case statusCode >= 400 && statusCode < 500:
		return newError(KindInvalidRequest, "invalid request (%d): %s", statusCode, msg)
	case statusCode >= 500:
		return newError(KindUnavailable, "server error (%d): %s", statusCode, msg)
	default:
		return newError(KindOther, "unexpected status %d: %s", statusCode, msg)
	}
}

func extractGeneration(resp *generateContentResponse) (*Generation, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, newError(KindSafetyBlocked, "prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, newError(KindEmptyResponse, "no candidates returned")
	}

	cand := resp.Candidates[0]
	switch cand.FinishReason {
	case finishReasonSafety, finishReasonImageSafety, finishReasonProhibitedContent:
		return nil, newError(KindSafetyBlocked, "candidate blocked: %s", cand.FinishReason)
	}

	var gen Generation
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && len(gen.ImageData) == 0 {
				imageData, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, newError(KindOther, "decoding image payload: %v", err)
				}
				gen.ImageData = imageData
				gen.ImageMimeType = p.InlineData.MimeType
			}
			if p.Text != "" && gen.Text == "" {
				gen.Text = p.Text
			}
		}
	}

	if len(gen.ImageData) == 0 && gen.Text == "" {
		return nil, newError(KindEmptyResponse, "candidate has no image or text content")
	}

	return &gen, nil
}
