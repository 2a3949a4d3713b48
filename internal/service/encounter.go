package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
)

var ErrNoValidRoster = errors.New("no combatant is able to battle")

// VictoryExperience is the XP the combatant that lands the final blow earns.
const VictoryExperience = 20

// BattleRepo persists the end-of-battle checkpoint.
type BattleRepo interface {
	RecordBattle(t *game.Trainer, rec *game.BattleRecord) error
}

// Encounter bundles everything a single battle needs.
type Encounter struct {
	Trainer  *game.Trainer
	Opponent *game.Combatant
	Table    *game.EffectivenessTable
	Dice     dice.Dice
	Input    engine.PlayerInput
	Reporter engine.Reporter
	// Enemy overrides the opponent's random move choice when set.
	Enemy engine.MoveChooser
}

// SpawnWild creates a full-health wild opponent. An empty species picks
// one at random.
func SpawnWild(catalog *game.Catalog, d dice.Dice, species string) (*game.Combatant, error) {
	var s game.Species
	if species == "" {
		s = catalog.Random(d)
	} else {
		var ok bool
		if s, ok = catalog.Get(species); !ok {
			return nil, fmt.Errorf("%w: %s", game.ErrUnknownSpecies, species)
		}
	}
	c := s.Spawn()
	return &c, nil
}

// RunEncounter runs one battle to completion and checkpoints the roster
// together with a new history record. An aborted battle is not persisted.
func RunEncounter(ctx context.Context, repo BattleRepo, enc Encounter) (engine.Result, *game.BattleRecord, error) {
	t := enc.Trainer
	if t == nil || !t.HasAlive() {
		return engine.Result{}, nil, ErrNoValidRoster
	}
	if a := t.Active(); a == nil || a.Fainted() {
		t.ActiveSlot = t.FirstAlive()
	}

	b := engine.NewBattle(t, enc.Opponent, engine.NewResolver(enc.Table, enc.Dice), enc.Input).
		WithReporter(enc.Reporter)
	if enc.Enemy != nil {
		b.WithOpponentChooser(enc.Enemy)
	}
	res, err := b.Run(ctx)
	if err != nil {
		return res, nil, err
	}

	outcome, _ := res.State.Outcome()
	rec := &game.BattleRecord{
		BattleID: uuid.NewString(),
		Opponent: res.Opponent,
		Outcome:  outcome,
		Turns:    res.Turns,
		Summary:  res.Summary,
	}
	if a := t.Active(); outcome == game.OutcomeVictory && a != nil {
		rec.XPGained = VictoryExperience
		rec.LevelUps = a.GainExperience(VictoryExperience)
		if rec.LevelUps > 0 {
			logging.Info("combatant leveled up", logging.Fields{
				constants.LogFieldTrainer: t.Name,
				constants.LogFieldSpecies: a.Species,
				constants.LogFieldLevel:   a.Level,
			})
		}
	}
	if err := repo.RecordBattle(t, rec); err != nil {
		logging.Error("failed to record battle", err, logging.Fields{constants.LogFieldTrainer: t.Name, constants.LogFieldBattleID: rec.BattleID})
		return res, nil, fmt.Errorf("record battle: %w", err)
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldTrainer:  t.Name,
		constants.LogFieldOpponent: res.Opponent,
		constants.LogFieldOutcome:  string(outcome),
		constants.LogFieldTurns:    res.Turns,
		constants.LogFieldBattleID: rec.BattleID,
	})
	return res, rec, nil
}
