package domain

// Engine is a named rendering-mode preset. Each engine maps to a fixed
// instruction prefix prepended to the user's edit instruction.
type Engine string

const (
	EngineFlash    Engine = "flash"
	EnginePrecise  Engine = "precise"
	EngineCreative Engine = "creative"
	EngineRestore  Engine = "restore"
)

const DefaultEngine = EngineFlash

var SupportedEngines = []Engine{EngineFlash, EnginePrecise, EngineCreative, EngineRestore}

var enginePrompts = map[Engine]string{
	EngineFlash:    "",
	EnginePrecise:  "Apply the requested edit with maximum fidelity. Preserve the original composition, lighting, skin texture and fine detail; change only what the instruction asks for.",
	EngineCreative: "Interpret the instruction freely. Bold stylization, dramatic lighting and artistic reinterpretation are welcome as long as the subject stays recognizable.",
	EngineRestore:  "Treat the attached image as a damaged or low-quality photograph. Remove scratches, noise and compression artifacts, recover faded colors and sharpen softly, keeping the result natural.",
}

// Prompt returns the instruction prefix for the engine.
// Unknown engines get no prefix.
func (e Engine) Prompt() string {
	return enginePrompts[e]
}

func (e Engine) DisplayName() string {
	switch e {
	case EngineFlash:
		return "Flash"
	case EnginePrecise:
		return "Precise"
	case EngineCreative:
		return "Creative"
	case EngineRestore:
		return "Restore"
	default:
		return string(e)
	}
}
