// Package types contains common types used across the application
package types

import "github.com/okian/pinpoint/internal/domain/model"

// Point is an absolute pixel position inside the displayed image.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CheckResult is the outcome of a hit-test.
type CheckResult struct {
	Correct     bool   `json:"correct"`
	CharacterID string `json:"characterId,omitempty"`
	Center      *Point `json:"center,omitempty"`
}

// Ack is the body returned by mutating endpoints.
type Ack struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Character and Score are re-exported for the HTTP layer.
type (
	Character = model.Character
	Score     = model.Score
)
