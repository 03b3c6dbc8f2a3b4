package domain

// Attachment is a user-supplied image payload pending submission.
// Immutable once created.
type Attachment struct {
	ID       string
	Data     []byte
	MimeType string
}
