// Package hittest decides whether a click lands on a character.
//
// All geometry happens in normalized space: the click is divided by the
// displayed image size and compared against the character's fractional
// center and radius.
package hittest

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/internal/domain/types"
)

// Click is a player's click in displayed-image pixels.
type Click struct {
	X           float64
	Y           float64
	ImageWidth  float64
	ImageHeight float64
	CharacterID string
}

// Validate rejects clicks that cannot be normalized. Coordinates on the
// left/top edge (zero) are legal; image dimensions must be positive.
func (c Click) Validate() error {
	switch {
	case strings.TrimSpace(c.CharacterID) == "":
		return fmt.Errorf("%w: missing characterId", ErrInvalidInput)
	case !finite(c.ImageWidth) || c.ImageWidth <= 0:
		return fmt.Errorf("%w: imageWidth must be positive", ErrInvalidInput)
	case !finite(c.ImageHeight) || c.ImageHeight <= 0:
		return fmt.Errorf("%w: imageHeight must be positive", ErrInvalidInput)
	case !finite(c.X) || c.X < 0:
		return fmt.Errorf("%w: x must be non-negative", ErrInvalidInput)
	case !finite(c.Y) || c.Y < 0:
		return fmt.Errorf("%w: y must be non-negative", ErrInvalidInput)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Normalized returns the click as fractions of the image size.
func (c Click) Normalized() (fx, fy float64) {
	return c.X / c.ImageWidth, c.Y / c.ImageHeight
}

// Distance is the Euclidean distance between a normalized point and the
// character center.
func Distance(fx, fy float64, ch model.Character) float64 {
	return math.Hypot(fx-ch.Cx, fy-ch.Cy)
}

// Hit reports whether the click is within the character's radius.
// The comparison is inclusive.
func Hit(c Click, ch model.Character) bool {
	fx, fy := c.Normalized()
	return Distance(fx, fy, ch) <= ch.Radius
}

// Center projects the character center onto an image of the given size.
func Center(ch model.Character, width, height float64) types.Point {
	return types.Point{
		X: int(math.Round(ch.Cx * width)),
		Y: int(math.Round(ch.Cy * height)),
	}
}

// Evaluate runs the full hit-test for a known character.
func Evaluate(c Click, ch model.Character) types.CheckResult {
	center := Center(ch, c.ImageWidth, c.ImageHeight)
	return types.CheckResult{
		Correct:     Hit(c, ch),
		CharacterID: ch.ID,
		Center:      &center,
	}
}
