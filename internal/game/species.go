package game

import (
	"errors"
	"fmt"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/keys"
)

var (
	ErrUnknownSpecies   = errors.New("unknown species")
	ErrDuplicateSpecies = errors.New("duplicate species")
	ErrInvalidSpecies   = errors.New("invalid species")
)

// MoveTemplate describes a move a species starts with.
type MoveTemplate struct {
	Name     string   `json:"name" yaml:"name"`
	Power    int      `json:"power" yaml:"power"`
	Affinity Affinity `json:"affinity" yaml:"affinity"`
}

// Species is the data-driven template every combatant is spawned from.
type Species struct {
	Key       string         `json:"key" yaml:"-"`
	Name      string         `json:"name" yaml:"name"`
	Affinity  Affinity       `json:"affinity" yaml:"affinity"`
	Attack    int            `json:"attack" yaml:"attack"`
	Defense   int            `json:"defense" yaml:"defense"`
	HitPoints int            `json:"hit_points" yaml:"hit_points"`
	Ability   string         `json:"ability" yaml:"ability"`
	Moves     []MoveTemplate `json:"moves" yaml:"moves"`
	Art       string         `json:"art,omitempty" yaml:"art"`
	Starter   bool           `json:"starter" yaml:"starter"`
}

// Spawn builds a fresh full-health combatant from the template.
func (s Species) Spawn() Combatant {
	moves := make([]Move, len(s.Moves))
	for i, m := range s.Moves {
		moves[i] = Move{Slot: i, Name: m.Name, Power: m.Power, Affinity: m.Affinity}
	}
	return Combatant{
		Species:          s.Key,
		Name:             s.Name,
		Affinity:         s.Affinity,
		Ability:          s.Ability,
		Attack:           s.Attack,
		Defense:          s.Defense,
		MaxHitPoints:     s.HitPoints,
		CurrentHitPoints: s.HitPoints,
		Level:            1,
		Moves:            moves,
	}
}

// normalize validates the template and rewrites affinities in canonical form.
func (s *Species) normalize() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSpecies)
	}
	aff, err := ParseAffinity(string(s.Affinity))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSpecies, s.Name, err)
	}
	s.Affinity = aff
	if s.Attack < 0 || s.Defense < 0 || s.HitPoints <= 0 {
		return fmt.Errorf("%w: %s: attack/defense must be >= 0 and hit_points > 0", ErrInvalidSpecies, s.Name)
	}
	if len(s.Moves) == 0 {
		return fmt.Errorf("%w: %s: at least one move is required", ErrInvalidSpecies, s.Name)
	}
	moves := make([]MoveTemplate, len(s.Moves))
	for i, m := range s.Moves {
		if m.Name == "" || m.Power < 0 {
			return fmt.Errorf("%w: %s: move needs a name and power >= 0", ErrInvalidSpecies, s.Name)
		}
		if m.Affinity, err = ParseAffinity(string(m.Affinity)); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", ErrInvalidSpecies, s.Name, m.Name, err)
		}
		moves[i] = m
	}
	s.Moves = moves
	return nil
}

// Catalog is the read-only set of species known to the process.
type Catalog struct {
	byKey map[string]Species
	order []string
}

// NewCatalog validates species and indexes them by canonical key.
func NewCatalog(species []Species) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]Species, len(species)), order: make([]string, 0, len(species))}
	for _, s := range species {
		if err := s.normalize(); err != nil {
			return nil, err
		}
		s.Key = keys.SpeciesKey(s.Name)
		if _, dup := c.byKey[s.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpecies, s.Name)
		}
		c.byKey[s.Key] = s
		c.order = append(c.order, s.Key)
	}
	return c, nil
}

// Get looks a species up by name or key, case-insensitively.
func (c *Catalog) Get(name string) (Species, bool) {
	s, ok := c.byKey[keys.SpeciesKey(name)]
	return s, ok
}

// All returns every species in configuration order.
func (c *Catalog) All() []Species {
	out := make([]Species, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.byKey[k])
	}
	return out
}

// Starters returns the species a new trainer may pick from.
func (c *Catalog) Starters() []Species {
	var out []Species
	for _, k := range c.order {
		if s := c.byKey[k]; s.Starter {
			out = append(out, s)
		}
	}
	return out
}

// Random picks a species uniformly.
func (c *Catalog) Random(d dice.Dice) Species {
	return c.byKey[c.order[d.Intn(len(c.order))]]
}

// Len returns the number of species.
func (c *Catalog) Len() int { return len(c.order) }
