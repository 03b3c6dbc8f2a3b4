package repository

import (
	"context"
	"sync"
	"time"

	"github.com/pixshop/bot/pkg/domain"
)

type sessionKey struct {
	chatID  int64
	topicID int
}

// sessionRepository keeps per-chat state in memory. The product keeps no
// durable server-side storage; a restart starts everyone from a fresh session.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[sessionKey]domain.Session
}

func NewSessionRepository() *sessionRepository {
	return &sessionRepository{sessions: make(map[sessionKey]domain.Session)}
}

func (r *sessionRepository) Get(_ context.Context, chatID int64, topicID int) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionKey{chatID, topicID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Save(_ context.Context, session *domain.Session) error {
	session.LastUpdate = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionKey{session.ID, session.TopicID}] = *session
	return nil
}

func (r *sessionRepository) DeleteMessages(_ context.Context, chatID int64, topicID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{chatID, topicID}
	session, ok := r.sessions[key]
	if !ok {
		return nil
	}
	session.Messages = nil
	r.sessions[key] = session
	return nil
}
