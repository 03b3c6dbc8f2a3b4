package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/gemini"
)

type attempt struct {
	gen *gemini.Generation
	err error
}

type fakeClient struct {
	attempts []attempt
	keys     []string
	requests []*gemini.Request
}

func (f *fakeClient) GenerateContent(_ context.Context, apiKey string, req *gemini.Request) (*gemini.Generation, error) {
	i := len(f.keys)
	f.keys = append(f.keys, apiKey)
	f.requests = append(f.requests, req)
	if i >= len(f.attempts) {
		return nil, &gemini.Error{Kind: gemini.KindUnavailable, Message: "unscripted attempt"}
	}
	return f.attempts[i].gen, f.attempts[i].err
}

func newTestEditor(t *testing.T, client *fakeClient, keys ...string) *Editor {
	t.Helper()
	editor, err := NewEditor(client, keys)
	if err != nil {
		t.Fatalf("NewEditor failed: %v", err)
	}
	return editor
}

func pngAttachment(id string) domain.Attachment {
	return domain.Attachment{ID: id, Data: []byte{1, 2, 3}, MimeType: "image/png"}
}

func imageGen(caption string) *gemini.Generation {
	return &gemini.Generation{ImageData: []byte{9, 9, 9}, ImageMimeType: "image/png", Text: caption}
}

func kindErr(kind gemini.ErrorKind) error {
	return &gemini.Error{Kind: kind, Message: "scripted failure"}
}

func TestNewEditor_EmptyPool(t *testing.T) {
	if _, err := NewEditor(&fakeClient{}, nil); err == nil {
		t.Fatal("expected error for empty api key pool")
	}
}

func TestEdit_FirstKeySucceeds_ShortCircuits(t *testing.T) {
	client := &fakeClient{attempts: []attempt{{gen: imageGen("")}}}
	editor := newTestEditor(t, client, "k1", "k2", "k3")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "remove background", domain.EngineFlash)

	if result.IsError {
		t.Fatalf("unexpected error result: %q", result.Text)
	}
	if !result.HasImage() {
		t.Fatal("expected image in result")
	}
	if len(client.keys) != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", len(client.keys))
	}
	if client.keys[0] != "k1" {
		t.Fatalf("expected first key to be tried, got %q", client.keys[0])
	}
}

func TestEdit_FallsBackToNextKeyOnUnavailable(t *testing.T) {
	client := &fakeClient{attempts: []attempt{
		{err: kindErr(gemini.KindUnavailable)},
		{gen: imageGen("")},
	}}
	editor := newTestEditor(t, client, "k1", "k2", "k3")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

	if result.IsError {
		t.Fatalf("unexpected error result: %q", result.Text)
	}
	if got, want := client.keys, []string{"k1", "k2"}; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected keys k1,k2 tried, got %v", got)
	}
}

func TestEdit_SafetyBlockHaltsImmediately(t *testing.T) {
	client := &fakeClient{attempts: []attempt{{err: kindErr(gemini.KindSafetyBlocked)}}}
	editor := newTestEditor(t, client, "k1", "k2", "k3")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if len(client.keys) != 1 {
		t.Fatalf("expected halt after 1 attempt, got %d", len(client.keys))
	}
	if !strings.Contains(result.Text, "политикой безопасности") {
		t.Fatalf("expected content policy message, got %q", result.Text)
	}
}

func TestEdit_InvalidRequestHaltsImmediately(t *testing.T) {
	client := &fakeClient{attempts: []attempt{{err: kindErr(gemini.KindInvalidRequest)}}}
	editor := newTestEditor(t, client, "k1", "k2")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if len(client.keys) != 1 {
		t.Fatalf("expected halt after 1 attempt, got %d", len(client.keys))
	}
	if !strings.Contains(result.Text, "не поддерживается") {
		t.Fatalf("expected invalid request message, got %q", result.Text)
	}
}

func TestEdit_AllKeysUnavailable_ExhaustsPool(t *testing.T) {
	client := &fakeClient{attempts: []attempt{
		{err: kindErr(gemini.KindUnavailable)},
		{err: kindErr(gemini.KindUnavailable)},
		{err: kindErr(gemini.KindUnavailable)},
	}}
	editor := newTestEditor(t, client, "k1", "k2", "k3")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if len(client.keys) != 3 {
		t.Fatalf("expected every key tried exactly once, got %d attempts", len(client.keys))
	}
	if !strings.Contains(result.Text, "резервные ключи исчерпаны") {
		t.Fatalf("expected cloud exhaustion message, got %q", result.Text)
	}
}

func TestEdit_EmptyResponseRetriesThenReportsEngine(t *testing.T) {
	client := &fakeClient{attempts: []attempt{
		{err: kindErr(gemini.KindEmptyResponse)},
		{err: kindErr(gemini.KindEmptyResponse)},
	}}
	editor := newTestEditor(t, client, "k1", "k2")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EnginePrecise)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if len(client.keys) != 2 {
		t.Fatalf("expected empty response to be retried, got %d attempts", len(client.keys))
	}
	if !strings.Contains(result.Text, domain.EnginePrecise.DisplayName()) {
		t.Fatalf("expected message to name the engine, got %q", result.Text)
	}
	if !strings.Contains(result.Text, "/engines") {
		t.Fatalf("expected message to suggest switching engines, got %q", result.Text)
	}
}

func TestEdit_UnclassifiedErrorRetriesByDefault(t *testing.T) {
	client := &fakeClient{attempts: []attempt{
		{err: errors.New("something odd happened")},
		{gen: imageGen("")},
	}}
	editor := newTestEditor(t, client, "k1", "k2")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

	if result.IsError {
		t.Fatalf("unexpected error result: %q", result.Text)
	}
	if len(client.keys) != 2 {
		t.Fatalf("expected fallback after unclassified error, got %d attempts", len(client.keys))
	}
}

func TestEdit_UnclassifiedFinalErrorReportsGenerically(t *testing.T) {
	client := &fakeClient{attempts: []attempt{
		{err: errors.New("boom")},
		{err: errors.New("boom again")},
	}}
	editor := newTestEditor(t, client, "k1", "k2")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineCreative)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(result.Text, "Критический сбой") {
		t.Fatalf("expected generic failure message, got %q", result.Text)
	}
	if !strings.Contains(result.Text, domain.EngineCreative.DisplayName()) {
		t.Fatalf("expected message to name the engine, got %q", result.Text)
	}
}

func TestEdit_CaptionPolicy(t *testing.T) {
	longCaption := strings.Repeat("a", 200)

	tests := []struct {
		name      string
		gen       *gemini.Generation
		wantImage bool
		wantText  string
	}{
		{
			name:      "image with short caption keeps both",
			gen:       imageGen("done ✅"),
			wantImage: true,
			wantText:  "done ✅",
		},
		{
			name:      "image with long caption keeps only image",
			gen:       imageGen(longCaption),
			wantImage: true,
			wantText:  "",
		},
		{
			name:      "image without caption",
			gen:       imageGen(""),
			wantImage: true,
			wantText:  "",
		},
		{
			name:      "text only",
			gen:       &gemini.Generation{Text: "I can only describe this image."},
			wantImage: false,
			wantText:  "I can only describe this image.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{attempts: []attempt{{gen: tt.gen}}}
			editor := newTestEditor(t, client, "k1")

			result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "x", domain.EngineFlash)

			if result.IsError {
				t.Fatalf("unexpected error result: %q", result.Text)
			}
			if result.HasImage() != tt.wantImage {
				t.Fatalf("HasImage = %v, want %v", result.HasImage(), tt.wantImage)
			}
			if result.Text != tt.wantText {
				t.Fatalf("Text = %q, want %q", result.Text, tt.wantText)
			}
		})
	}
}

func TestEdit_UnknownEngineStillProceeds(t *testing.T) {
	client := &fakeClient{attempts: []attempt{{gen: imageGen("")}}}
	editor := newTestEditor(t, client, "k1")

	result := editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "crop it", domain.Engine("turbo"))

	if result.IsError {
		t.Fatalf("unexpected error result: %q", result.Text)
	}

	text := client.requests[0].Text
	for _, engine := range domain.SupportedEngines {
		if prompt := engine.Prompt(); prompt != "" && strings.Contains(text, prompt) {
			t.Fatalf("unknown engine must not pick up prefix of %q", engine)
		}
	}
	if !strings.Contains(text, "crop it") {
		t.Fatalf("instruction missing from composed text: %q", text)
	}
}

func TestEdit_BlankInstructionFallsBackToDefault(t *testing.T) {
	client := &fakeClient{attempts: []attempt{{gen: imageGen("")}}}
	editor := newTestEditor(t, client, "k1")

	editor.Edit(context.Background(), []domain.Attachment{pngAttachment("a")}, "   ", domain.EngineFlash)

	if !strings.Contains(client.requests[0].Text, defaultInstruction) {
		t.Fatalf("expected default instruction in composed text, got %q", client.requests[0].Text)
	}
}

func TestComposeRequest_ImagesInOrderThenText(t *testing.T) {
	attachments := []domain.Attachment{
		{ID: "1", Data: []byte("one"), MimeType: "image/png"},
		{ID: "2", Data: []byte("two"), MimeType: "image/jpeg"},
		{ID: "3", Data: []byte("three"), MimeType: "image/webp"},
	}

	req := composeRequest(attachments, "merge them", domain.EnginePrecise)

	if len(req.Images) != len(attachments) {
		t.Fatalf("expected %d image parts, got %d", len(attachments), len(req.Images))
	}
	for i, img := range req.Images {
		if string(img.Data) != string(attachments[i].Data) {
			t.Fatalf("image %d out of order: got %q", i, img.Data)
		}
		if img.MimeType != attachments[i].MimeType {
			t.Fatalf("image %d mime mismatch: got %q", i, img.MimeType)
		}
	}
	if req.Text == "" {
		t.Fatal("expected exactly one text part")
	}
	if !strings.Contains(req.Text, domain.EnginePrecise.Prompt()) {
		t.Fatal("expected engine prefix in composed text")
	}
	if !strings.HasPrefix(req.Text, systemPreamble) {
		t.Fatal("expected system preamble first in composed text")
	}
	if !strings.HasSuffix(req.Text, "merge them") {
		t.Fatal("expected user instruction last in composed text")
	}
}
