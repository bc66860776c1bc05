// Package store keeps analysis jobs for the lifetime of a session so that
// area-of-interest queries can run after the analysis that produced them.
//
// MemoryStore serves a single process; RedisStore shares jobs between
// processes. Both expire jobs after a fixed TTL.
package store

import (
	"context"
	"errors"

	"github.com/ironsheep/attention-cta/internal/analysis"
)

// ErrNotFound is returned for unknown or expired job ids.
var ErrNotFound = errors.New("job not found")

// Store persists jobs by id.
type Store interface {
	Put(ctx context.Context, job *analysis.Job) error
	Get(ctx context.Context, id string) (*analysis.Job, error)
	Delete(ctx context.Context, id string) error
}
