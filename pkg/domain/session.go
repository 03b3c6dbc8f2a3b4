package domain

import "time"

// maxSessionMessages caps the stored conversation history per chat.
const maxSessionMessages = 50

type Session struct {
	ID         int64
	TopicID    int
	Engine     Engine
	Messages   []Message
	LastUpdate time.Time
}

func NewSession(chatID int64, topicID int) *Session {
	return &Session{
		ID:      chatID,
		TopicID: topicID,
		Engine:  DefaultEngine,
	}
}

// Append adds a message to the session history, dropping the oldest entries
// once the cap is reached.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
	if len(s.Messages) > maxSessionMessages {
		s.Messages = s.Messages[len(s.Messages)-maxSessionMessages:]
	}
}

type Message struct {
	Role         string
	ContentParts []ContentPart
}

const (
	MessageRoleUser   = "user"
	MessageRoleEngine = "engine"
)

type ContentPart struct {
	Type ContentPartType
	Data string
}

type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image"
)
