package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
)

const (
	minTrainerName = 3
	maxTrainerName = 32
)

var (
	ErrInvalidTrainerName = errors.New("trainer name must be 3-32 letters, digits, spaces or .-'")
	ErrNotAStarter        = errors.New("species is not a starter")
)

// TrainerRepo is the minimal repository interface required by the trainer
// use cases. Using a small interface simplifies testing.
type TrainerRepo interface {
	CreateTrainer(t *game.Trainer) error
	GetTrainerByName(name string) (*game.Trainer, error)
	SaveCheckpoint(t *game.Trainer) error
}

// NormalizeTrainerName trims the name and checks length and charset.
func NormalizeTrainerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := len([]rune(name))
	if n < minTrainerName || n > maxTrainerName {
		return "", ErrInvalidTrainerName
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '-' || r == '\'' {
			continue
		}
		return "", ErrInvalidTrainerName
	}
	return name, nil
}

// CreateTrainer registers a new trainer holding one starter.
func CreateTrainer(repo TrainerRepo, catalog *game.Catalog, name, starter string) (*game.Trainer, error) {
	name, err := NormalizeTrainerName(name)
	if err != nil {
		return nil, err
	}
	s, ok := catalog.Get(starter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrUnknownSpecies, starter)
	}
	if !s.Starter {
		return nil, fmt.Errorf("%w: %s", ErrNotAStarter, s.Name)
	}
	t := &game.Trainer{Name: name, PublicID: uuid.NewString(), Potions: game.StartingPotions}
	if err := t.AddCombatant(s.Spawn()); err != nil {
		return nil, err
	}
	if err := repo.CreateTrainer(t); err != nil {
		return nil, err
	}
	logging.Info("trainer created", logging.Fields{constants.LogFieldTrainer: name, constants.LogFieldSpecies: s.Key})
	return t, nil
}

// AddToRoster spawns species at full health into the trainer's roster.
func AddToRoster(repo TrainerRepo, catalog *game.Catalog, name, species string) (*game.Trainer, error) {
	s, ok := catalog.Get(species)
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrUnknownSpecies, species)
	}
	t, err := repo.GetTrainerByName(name)
	if err != nil {
		return nil, err
	}
	if err := t.AddCombatant(s.Spawn()); err != nil {
		return nil, err
	}
	if err := repo.SaveCheckpoint(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SwitchActive changes which roster member leads the next battle.
func SwitchActive(repo TrainerRepo, name string, slot int) (*game.Trainer, error) {
	t, err := repo.GetTrainerByName(name)
	if err != nil {
		return nil, err
	}
	if err := t.SwitchActive(slot); err != nil {
		return nil, err
	}
	if err := repo.SaveCheckpoint(t); err != nil {
		return nil, err
	}
	logging.Debug("active combatant switched", logging.Fields{constants.LogFieldTrainer: t.Name, constants.LogFieldSlot: slot})
	return t, nil
}

// RestRoster heals every roster member to full health and restocks potions.
func RestRoster(repo TrainerRepo, name string) (*game.Trainer, error) {
	t, err := repo.GetTrainerByName(name)
	if err != nil {
		return nil, err
	}
	t.RestoreAll()
	if t.Potions < game.StartingPotions {
		t.Potions = game.StartingPotions
	}
	if t.Active() == nil && len(t.Roster) > 0 {
		t.ActiveSlot = 0
	}
	if err := repo.SaveCheckpoint(t); err != nil {
		return nil, err
	}
	logging.Info("roster rested", logging.Fields{constants.LogFieldTrainer: t.Name, constants.LogFieldCount: len(t.Roster)})
	return t, nil
}

// DeleteTrainer removes the trainer and everything it owns.
func DeleteTrainer(repo interface{ DeleteTrainer(string) error }, name string) error {
	if err := repo.DeleteTrainer(name); err != nil {
		return err
	}
	logging.Info("trainer deleted", logging.Fields{constants.LogFieldTrainer: name})
	return nil
}
