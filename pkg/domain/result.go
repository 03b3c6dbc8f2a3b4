package domain

import "encoding/base64"

// ResultMessage is the single outcome of one edit operation: either an edited
// image with an optional short caption, a text reply, or a user-facing error.
// Immutable once produced.
type ResultMessage struct {
	Text          string
	ImageData     []byte
	ImageMimeType string
	IsError       bool
}

func (m ResultMessage) HasImage() bool {
	return len(m.ImageData) > 0
}

// ImageDataURI encodes the image payload for storage in the session history.
func (m ResultMessage) ImageDataURI() string {
	if !m.HasImage() {
		return ""
	}
	return "data:" + m.ImageMimeType + ";base64," + base64.StdEncoding.EncodeToString(m.ImageData)
}
