package engine

import (
	"math"

	"github.com/ericogr/pocket-arena/internal/game"
)

// --- Damage modifiers --------------------------------------------------
const (
	// RollSides is the die every move is resolved against.
	RollSides = 10

	stabBonus       = 1.5
	stabNone        = 1.0
	doubleHitFactor = 1.5
)

// outcomeForRoll maps a d10 result onto the outcome table:
// 1-2 no effect, 3-7 basic hit, 8-9 double hit, 10 lose turn.
func outcomeForRoll(roll int) Outcome {
	switch {
	case roll <= 2:
		return OutcomeNoEffect
	case roll <= 7:
		return OutcomeBasic
	case roll <= 9:
		return OutcomeDouble
	default:
		return OutcomeLoseTurn
	}
}

// effectivePower is the base power a roll outcome grants a move.
func effectivePower(o Outcome, power int) int {
	switch o {
	case OutcomeBasic:
		return power
	case OutcomeDouble:
		return int(math.Floor(float64(power) * doubleHitFactor))
	default:
		return 0
	}
}

// stabFor returns the same-type attack bonus.
func stabFor(move *game.Move, attacker *game.Combatant) float64 {
	if move.Affinity == attacker.Affinity {
		return stabBonus
	}
	return stabNone
}

func defenseWithFloor(h *game.Combatant) int {
	if h.Defense < 1 {
		return 1
	}
	return h.Defense
}

// computeDamage applies the damage formula:
// floor(power * attack / max(1, defense) * stab * multiplier).
func computeDamage(power int, attacker, defender *game.Combatant, stab, multiplier float64) int {
	if power <= 0 {
		return 0
	}
	raw := float64(power) * float64(attacker.Attack) / float64(defenseWithFloor(defender)) * stab * multiplier
	if raw <= 0 {
		return 0
	}
	return int(math.Floor(raw))
}

func annotate(multiplier float64) Effectiveness {
	switch {
	case multiplier > game.MultiplierNeutral:
		return EffectivenessSuper
	case multiplier < game.MultiplierNeutral:
		return EffectivenessWeak
	default:
		return EffectivenessNeutral
	}
}
