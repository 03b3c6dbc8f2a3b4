package domain

// EditJob is a saved edit request, kept so the user can re-run it via the
// "repeat" button under a result.
type EditJob struct {
	ID          int
	Instruction string
	Engine      Engine
	Attachments []Attachment
}
