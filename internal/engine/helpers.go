package engine

import (
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

// displayName returns the combatant's name or a placeholder when nil.
func displayName(c *game.Combatant) string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Species
}

// hpLine renders "Name: current/max HP".
func hpLine(c *game.Combatant) string {
	return fmt.Sprintf("%s: %d/%d HP", displayName(c), c.CurrentHitPoints, c.MaxHitPoints)
}

// describeMove builds the narration for a resolved move.
func describeMove(actor, target *game.Combatant, res MoveResult) string {
	msg := fmt.Sprintf("%s uses %s!", displayName(actor), res.Move)
	switch res.Outcome {
	case OutcomeNoEffect:
		return msg + " It had no effect."
	case OutcomeLoseTurn:
		return msg + " It stumbled and lost the turn."
	case OutcomeDouble:
		msg += " Double hit!"
	}
	switch res.Effectiveness {
	case EffectivenessSuper:
		msg += " It's super effective!"
	case EffectivenessWeak:
		msg += " It's not very effective..."
	}
	return fmt.Sprintf("%s %s takes %d damage (%s).", msg, displayName(target), res.Damage, hpLine(target))
}
