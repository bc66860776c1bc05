package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ironsheep/attention-cta/internal/analysis"
)

type entry struct {
	job     *analysis.Job
	expires time.Time
}

// MemoryStore holds jobs in process memory. Expired jobs are dropped lazily
// on access and on every Put.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore returns a store expiring jobs after ttl. A non-positive ttl
// keeps jobs forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{jobs: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Put(ctx context.Context, job *analysis.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if job == nil || job.ID == "" {
		return fmt.Errorf("failed to store job: missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.jobs {
		if s.expired(e, now) {
			delete(s.jobs, id)
		}
	}
	var expires time.Time
	if s.ttl > 0 {
		expires = now.Add(s.ttl)
	}
	s.jobs[job.ID] = entry{job: job, expires: expires}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*analysis.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok || s.expired(e, s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e.job, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored jobs, including expired ones not yet dropped.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func (s *MemoryStore) expired(e entry, now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}
