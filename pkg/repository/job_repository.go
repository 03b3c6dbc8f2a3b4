package repository

import (
	"context"
	"sync"

	"github.com/pixshop/bot/pkg/domain"
)

// maxStoredJobs bounds memory: the oldest saved edit simply stops being
// repeatable once evicted.
const maxStoredJobs = 512

type jobRepository struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]domain.EditJob
}

func NewJobRepository() *jobRepository {
	return &jobRepository{jobs: make(map[int]domain.EditJob)}
}

func (r *jobRepository) Save(_ context.Context, job *domain.EditJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	job.ID = r.nextID
	r.jobs[job.ID] = *job

	delete(r.jobs, job.ID-maxStoredJobs)
	return nil
}

func (r *jobRepository) GetByID(_ context.Context, id int) (*domain.EditJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}
