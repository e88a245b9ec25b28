package service

import (
	"github.com/okian/pinpoint/internal/adapters/repository"
	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend. Without it Start uses an
// in-memory store.
func WithStore(store repository.GameStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLeaderboardLimit caps how many scores Leaderboard returns.
func WithLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardLimit = n
		}
	}
}

// WithSeedCharacters sets the characters written to an empty store on Start.
func WithSeedCharacters(chars []model.Character) Option {
	return func(s *Service) {
		if len(chars) > 0 {
			s.seed = chars
		}
	}
}

// WithIDGenerator overrides score id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}
