package domain

import "testing"

func TestEnginePrompt_KnownEngines(t *testing.T) {
	for _, engine := range []Engine{EnginePrecise, EngineCreative, EngineRestore} {
		if engine.Prompt() == "" {
			t.Fatalf("expected non-empty prompt for %q", engine)
		}
	}
	if EngineFlash.Prompt() != "" {
		t.Fatal("flash is the base engine and must not add a prefix")
	}
}

func TestEnginePrompt_UnknownEngine(t *testing.T) {
	if got := Engine("turbo").Prompt(); got != "" {
		t.Fatalf("unknown engine must resolve to empty prefix, got %q", got)
	}
}

func TestEngineDisplayName_FallsBackToRawName(t *testing.T) {
	if got := Engine("turbo").DisplayName(); got != "turbo" {
		t.Fatalf("DisplayName = %q, want raw name", got)
	}
}
