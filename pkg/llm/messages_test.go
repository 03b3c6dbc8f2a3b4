package llm

import (
	"strings"
	"testing"

	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/gemini"
)

func TestUserMessage_Deterministic(t *testing.T) {
	kinds := []gemini.ErrorKind{
		gemini.KindSafetyBlocked,
		gemini.KindInvalidRequest,
		gemini.KindUnavailable,
		gemini.KindEmptyResponse,
		gemini.KindOther,
	}

	for _, kind := range kinds {
		first := userMessage(kind, domain.EngineRestore)
		second := userMessage(kind, domain.EngineRestore)
		if first != second {
			t.Fatalf("message for kind %s not deterministic", kind)
		}
		if first == "" {
			t.Fatalf("empty message for kind %s", kind)
		}
	}
}

func TestUserMessage_DistinctPerKind(t *testing.T) {
	seen := map[string]gemini.ErrorKind{}
	for _, kind := range []gemini.ErrorKind{
		gemini.KindSafetyBlocked,
		gemini.KindInvalidRequest,
		gemini.KindUnavailable,
		gemini.KindEmptyResponse,
		gemini.KindOther,
	} {
		msg := userMessage(kind, domain.EngineFlash)
		if prev, ok := seen[msg]; ok {
			t.Fatalf("kinds %s and %s map to the same message", prev, kind)
		}
		seen[msg] = kind
	}
}

func TestUserMessage_EngineNameOnlyWhereRelevant(t *testing.T) {
	engine := domain.EngineCreative

	withEngine := []gemini.ErrorKind{gemini.KindEmptyResponse, gemini.KindOther}
	for _, kind := range withEngine {
		if !strings.Contains(userMessage(kind, engine), engine.DisplayName()) {
			t.Fatalf("expected engine name in message for kind %s", kind)
		}
	}

	withoutEngine := []gemini.ErrorKind{gemini.KindSafetyBlocked, gemini.KindInvalidRequest, gemini.KindUnavailable}
	for _, kind := range withoutEngine {
		if strings.Contains(userMessage(kind, engine), engine.DisplayName()) {
			t.Fatalf("did not expect engine name in message for kind %s", kind)
		}
	}
}
