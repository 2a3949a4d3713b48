package engine

import (
	"errors"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/game"
)

var (
	ErrAttackerFainted = errors.New("attacker has fainted and cannot act")
	ErrTargetFainted   = errors.New("target has fainted")
	ErrInvalidMove     = errors.New("invalid move")
)

// Outcome classifies a single roll.
type Outcome string

const (
	OutcomeNoEffect Outcome = "no_effect"
	OutcomeBasic    Outcome = "basic_hit"
	OutcomeDouble   Outcome = "double_hit"
	OutcomeLoseTurn Outcome = "lose_turn"
)

// Effectiveness is the display annotation derived from the multiplier.
type Effectiveness string

const (
	EffectivenessNeutral Effectiveness = "neutral"
	EffectivenessSuper   Effectiveness = "super_effective"
	EffectivenessWeak    Effectiveness = "not_very_effective"
)

// MoveResult is the numeric outcome of one resolved move. Damage is the HP
// actually removed from the defender; ComputedDamage is the formula result
// before clamping to the defender's remaining HP.
type MoveResult struct {
	Move           string        `json:"move"`
	Roll           int           `json:"roll"`
	Outcome        Outcome       `json:"outcome"`
	ComputedDamage int           `json:"computed_damage"`
	Damage         int           `json:"damage"`
	STAB           float64       `json:"stab"`
	Multiplier     float64       `json:"multiplier"`
	Effectiveness  Effectiveness `json:"effectiveness"`
}

// Resolver computes and applies the outcome of single moves.
type Resolver struct {
	table *game.EffectivenessTable
	dice  dice.Dice
}

func NewResolver(table *game.EffectivenessTable, d dice.Dice) *Resolver {
	return &Resolver{table: table, dice: d}
}

// Resolve rolls a d10 for move and applies the resulting damage to defender.
// The caller validates the move index; fainted participants are refused.
func (r *Resolver) Resolve(move *game.Move, attacker, defender *game.Combatant) (MoveResult, error) {
	if move == nil || attacker == nil || defender == nil {
		return MoveResult{}, ErrInvalidMove
	}
	if attacker.Fainted() {
		return MoveResult{}, ErrAttackerFainted
	}
	if defender.Fainted() {
		return MoveResult{}, ErrTargetFainted
	}
	return r.resolveRoll(r.dice.Intn(RollSides)+1, move, attacker, defender), nil
}

func (r *Resolver) resolveRoll(roll int, move *game.Move, attacker, defender *game.Combatant) MoveResult {
	res := MoveResult{
		Move:          move.Name,
		Roll:          roll,
		Outcome:       outcomeForRoll(roll),
		STAB:          stabNone,
		Multiplier:    game.MultiplierNeutral,
		Effectiveness: EffectivenessNeutral,
	}
	power := effectivePower(res.Outcome, move.Power)
	if power == 0 {
		return res
	}
	// Effectiveness keys off the combatants' own affinities; the move's
	// affinity only feeds STAB.
	res.STAB = stabFor(move, attacker)
	res.Multiplier = r.table.Multiplier(attacker.Affinity, defender.Affinity)
	res.Effectiveness = annotate(res.Multiplier)
	res.ComputedDamage = computeDamage(power, attacker, defender, res.STAB, res.Multiplier)
	res.Damage = defender.TakeDamage(res.ComputedDamage)
	return res
}
