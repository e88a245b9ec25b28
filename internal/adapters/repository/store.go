// Package repository persists the game document: character targets and
// leaderboard scores.
//
// Every backend implements the same full-document contract. Load returns
// the whole State and Save replaces it; a reader never sees a document that
// is half written.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/pinpoint/internal/domain/model"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// GameStore provides read/write access to the game document.
type GameStore interface {
	// Load returns the current document. A store with no prior state returns
	// model.EmptyState().
	Load(ctx context.Context) (model.State, error)

	// Save atomically replaces the document.
	Save(ctx context.Context, st model.State) error

	// Close releases the backend. Further calls return ErrClosed.
	Close() error
}

// Open builds the GameStore for backend, wrapped with metrics.
func Open(ctx context.Context, backend, path string) (GameStore, error) {
	var (
		s   GameStore
		err error
	)
	backend = strings.ToLower(strings.TrimSpace(backend))
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(path)
	case BackendSQLite:
		s, err = OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backend), nil
}

// normalize replaces nil slices so the JSON form is always `[]`.
func normalize(st model.State) model.State {
	if st.Characters == nil {
		st.Characters = []model.Character{}
	}
	if st.Scores == nil {
		st.Scores = []model.Score{}
	}
	return st
}
