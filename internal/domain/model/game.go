// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidCharacter is returned by Character.Validate for malformed targets.
var ErrInvalidCharacter = errors.New("invalid character")

// Character is a hidden target inside the scene image. Cx, Cy and Radius are
// fractions of the image width/height, so hit-testing does not depend on the
// size the image is displayed at.
type Character struct {
	ID     string  `json:"id" db:"id" koanf:"id"`
	Cx     float64 `json:"cx" db:"cx" koanf:"cx"`
	Cy     float64 `json:"cy" db:"cy" koanf:"cy"`
	Radius float64 `json:"radius" db:"radius" koanf:"radius"`
	Found  bool    `json:"found" db:"found" koanf:"found"`
}

// Validate reports whether the character can be hit-tested.
func (c Character) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidCharacter)
	case !inUnit(c.Cx):
		return fmt.Errorf("%w: %s: cx %v outside [0,1]", ErrInvalidCharacter, c.ID, c.Cx)
	case !inUnit(c.Cy):
		return fmt.Errorf("%w: %s: cy %v outside [0,1]", ErrInvalidCharacter, c.ID, c.Cy)
	case math.IsNaN(c.Radius) || c.Radius <= 0 || c.Radius > 1:
		return fmt.Errorf("%w: %s: radius %v outside (0,1]", ErrInvalidCharacter, c.ID, c.Radius)
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Score is a completed round on the leaderboard.
type Score struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	TimeMs int64  `json:"timeMs" db:"time_ms"`
}

// State is the whole persisted game document.
type State struct {
	Characters []Character `json:"characters"`
	Scores     []Score     `json:"scores"`
}

// EmptyState returns the document used when nothing has been persisted yet.
func EmptyState() State {
	return State{Characters: []Character{}, Scores: []Score{}}
}

// Clone returns a deep copy; callers may mutate the result freely.
func (s State) Clone() State {
	out := State{
		Characters: make([]Character, len(s.Characters)),
		Scores:     make([]Score, len(s.Scores)),
	}
	copy(out.Characters, s.Characters)
	copy(out.Scores, s.Scores)
	return out
}

// Character returns a pointer into s.Characters for id, or nil.
func (s *State) Character(id string) *Character {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i]
		}
	}
	return nil
}

// FoundCount returns how many characters are currently marked found.
func (s State) FoundCount() int {
	n := 0
	for _, c := range s.Characters {
		if c.Found {
			n++
		}
	}
	return n
}
