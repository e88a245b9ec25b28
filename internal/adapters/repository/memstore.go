package repository

import (
	"context"
	"sync"

	"github.com/okian/pinpoint/internal/domain/model"
)

// MemoryStore keeps the document in process memory. Load and Save copy the
// document so callers never share slices with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	state  model.State
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: model.EmptyState()}
}

// Load implements GameStore.
func (s *MemoryStore) Load(ctx context.Context) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.State{}, ErrClosed
	}
	return s.state.Clone(), nil
}

// Save implements GameStore.
func (s *MemoryStore) Save(ctx context.Context, st model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.state = normalize(st).Clone()
	return nil
}

// Close implements GameStore.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
