package repository

import "sync"

// accessRepository tracks users who redeemed an access code this process
// lifetime.
type accessRepository struct {
	mu    sync.RWMutex
	users map[int64]struct{}
}

func NewAccessRepository() *accessRepository {
	return &accessRepository{users: make(map[int64]struct{})}
}

func (r *accessRepository) Grant(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = struct{}{}
}

func (r *accessRepository) IsGranted(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[userID]
	return ok
}
