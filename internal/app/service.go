// Package service provides the core game service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/okian/pinpoint/internal/adapters/repository"
	"github.com/okian/pinpoint/internal/domain/hittest"
	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/internal/domain/types"
	"github.com/okian/pinpoint/pkg/logger"
	"github.com/okian/pinpoint/pkg/metrics"
)

const (
	defaultLeaderboardLimit = 10
	maxNameLength           = 64
)

// Service runs hit-tests and the session lifecycle against a GameStore.
//
// Each operation loads the whole document, changes it in memory and saves it
// back. Mutations are serialized by mu so two requests in this process cannot
// overwrite each other's update.
type Service struct {
	mu sync.Mutex

	store            repository.GameStore
	seed             []model.Character
	leaderboardLimit int
	newID            func() (string, error)

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		leaderboardLimit: defaultLeaderboardLimit,
		seed:             repository.DefaultCharacters(),
		newID:            newScoreID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newScoreID returns a UUIDv7, so ids sort by creation time.
func newScoreID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Start prepares the store and seeds it when empty.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.Instrument(repository.NewMemoryStore(), repository.BackendMemory)
		s.logger.Info(ctx, "no store configured; using in-memory store")
	}

	seeded, err := repository.Seed(ctx, s.store, s.seed)
	if err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	st, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	updateGauges(st)

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.Bool("seeded", seeded),
		logger.Int("characters", len(st.Characters)),
		logger.Int("scores", len(st.Scores)),
		logger.Int("leaderboardLimit", s.leaderboardLimit),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "game service stopped")
}

func (s *Service) load(ctx context.Context) (model.State, error) {
	if !s.started {
		return model.State{}, ErrNotStarted
	}
	return s.store.Load(ctx)
}

// Characters returns every character including its target geometry.
func (s *Service) Characters(ctx context.Context) ([]model.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return st.Characters, nil
}

// Check hit-tests a click. An unknown character is a plain miss rather than
// an error. A hit marks the character found and persists it.
func (s *Service) Check(ctx context.Context, click hittest.Click) (types.CheckResult, error) {
	if err := click.Validate(); err != nil {
		_ = metrics.RecordCheck(metrics.CheckInvalid)
		return types.CheckResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return types.CheckResult{}, err
	}

	ch := st.Character(click.CharacterID)
	if ch == nil {
		_ = metrics.RecordCheck(metrics.CheckUnknown)
		s.logger.Debug(ctx, "check for unknown character", logger.String("characterId", click.CharacterID))
		return types.CheckResult{Correct: false}, nil
	}

	res := hittest.Evaluate(click, *ch)
	if !res.Correct {
		_ = metrics.RecordCheck(metrics.CheckMiss)
		return res, nil
	}

	ch.Found = true
	if err := s.store.Save(ctx, st); err != nil {
		return types.CheckResult{}, fmt.Errorf("persist found character: %w", err)
	}
	_ = metrics.RecordCheck(metrics.CheckHit)
	updateGauges(st)
	s.logger.Info(ctx, "character found", logger.String("characterId", ch.ID))
	return res, nil
}

// Reset clears the found flag of every character. It is idempotent.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range st.Characters {
		st.Characters[i].Found = false
	}
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("persist reset: %w", err)
	}
	metrics.RecordReset()
	updateGauges(st)
	return nil
}

// SubmitScore appends a completed round to the leaderboard. The name is
// trimmed and must be 1-64 characters; the time must not be negative.
func (s *Service) SubmitScore(ctx context.Context, name string, timeMs int64) (model.Score, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return model.Score{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case utf8.RuneCountInString(name) > maxNameLength:
		return model.Score{}, fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, maxNameLength)
	case timeMs < 0:
		return model.Score{}, fmt.Errorf("%w: timeMs must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return model.Score{}, err
	}
	id, err := s.newID()
	if err != nil {
		return model.Score{}, fmt.Errorf("generate score id: %w", err)
	}
	score := model.Score{ID: id, Name: name, TimeMs: timeMs}
	st.Scores = append(st.Scores, score)
	if err := s.store.Save(ctx, st); err != nil {
		return model.Score{}, fmt.Errorf("persist score: %w", err)
	}
	metrics.RecordScoreSubmitted(timeMs)
	updateGauges(st)
	s.logger.Info(ctx, "score submitted",
		logger.String("scoreId", score.ID),
		logger.String("name", score.Name),
		logger.Int64("timeMs", score.TimeMs),
	)
	return score, nil
}

// Leaderboard returns the fastest scores, ascending by time. Equal times keep
// their stored order.
func (s *Service) Leaderboard(ctx context.Context) ([]model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return topScores(st.Scores, s.leaderboardLimit), nil
}

func topScores(scores []model.Score, limit int) []model.Score {
	out := make([]model.Score, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeMs < out[j].TimeMs })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Ping verifies the store is readable.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load(ctx)
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"leaderboardLimit": s.leaderboardLimit,
	}
	if !s.started {
		return stats
	}
	st, err := s.store.Load(ctx)
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["characters"] = len(st.Characters)
	stats["charactersFound"] = st.FoundCount()
	stats["scores"] = len(st.Scores)
	updateGauges(st)
	return stats
}

func updateGauges(st model.State) {
	metrics.UpdateGameState(len(st.Characters), st.FoundCount(), len(st.Scores))
}
