package session

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// MemoryStore keeps runs in process memory. Used by the API server for its
// lifetime and by tests.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]Run
}

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[uuid.UUID]Run)}
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id)
	}
	out := r
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		copied := r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, r *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = *r
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
