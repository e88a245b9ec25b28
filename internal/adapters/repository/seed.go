package repository

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/pinpoint/internal/domain/model"
)

// DefaultCharacters is the built-in target set, matching the bundled scene.
func DefaultCharacters() []model.Character {
	return []model.Character{
		{ID: "waldo", Cx: 0.62, Cy: 0.41, Radius: 0.03},
	}
}

// LoadSeedFile reads characters from a YAML file of the form
//
//	characters:
//	  - id: waldo
//	    cx: 0.62
//	    cy: 0.41
//	    radius: 0.03
func LoadSeedFile(path string) ([]model.Character, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}
	var out []model.Character
	if err := k.UnmarshalWithConf("characters", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
	}
	if err := validateSeed(out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateSeed(chars []model.Character) error {
	if len(chars) == 0 {
		return fmt.Errorf("%w: no characters", ErrInvalidSeed)
	}
	seen := make(map[string]struct{}, len(chars))
	for _, c := range chars {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Seed writes chars into the store when it holds no characters yet. It
// reports whether anything was written. Existing documents, including their
// found flags and scores, are left alone.
func Seed(ctx context.Context, s GameStore, chars []model.Character) (bool, error) {
	if err := validateSeed(chars); err != nil {
		return false, err
	}
	st, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(st.Characters) > 0 {
		return false, nil
	}
	st.Characters = make([]model.Character, len(chars))
	for i, c := range chars {
		c.Found = false
		st.Characters[i] = c
	}
	if err := s.Save(ctx, st); err != nil {
		return false, err
	}
	return true, nil
}
