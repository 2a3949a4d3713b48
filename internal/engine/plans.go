package engine

import (
	"context"
	"errors"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/game"
)

var (
	// ErrInvalidInput makes the battle report the problem and prompt again.
	ErrInvalidInput = errors.New("invalid input")
	// ErrScriptExhausted is returned by ScriptedInput when it runs out of
	// commands before the battle ends.
	ErrScriptExhausted = errors.New("battle script exhausted")
)

// --- Player commands ---------------------------------------------------
type CommandKind string

const (
	CommandFight  CommandKind = "fight"
	CommandDefend CommandKind = "defend"
	CommandItem   CommandKind = "item"
	CommandFlee   CommandKind = "flee"
	CommandStatus CommandKind = "status"
)

// Command is one scripted player decision. Index is the 0-based move slot
// and is only read for CommandFight.
type Command struct {
	Kind  CommandKind `json:"command"`
	Index int         `json:"index"`
}

// PlayerInput supplies the player's decisions. Returning ErrInvalidInput
// re-prompts; any other error aborts the battle.
type PlayerInput interface {
	ChooseCommand(ctx context.Context, active, opponent *game.Combatant) (CommandKind, error)
	ChooseMove(ctx context.Context, active *game.Combatant) (int, error)
	ChooseReplacement(ctx context.Context, roster []game.Combatant) (int, error)
}

// MoveChooser picks the opponent's move index.
type MoveChooser interface {
	ChooseMove(c *game.Combatant) int
}

// RandomMoves picks uniformly among the combatant's moves.
type RandomMoves struct {
	Dice dice.Dice
}

func (r RandomMoves) ChooseMove(c *game.Combatant) int {
	if len(c.Moves) == 0 {
		return 0
	}
	return r.Dice.Intn(len(c.Moves))
}

// ScriptedInput replays a fixed command list. Replacements are consumed in
// order; once they run out the battle falls back to the first alive member.
type ScriptedInput struct {
	Commands     []Command
	Replacements []int

	next        int
	nextReplace int
	pendingMove int
}

func (s *ScriptedInput) ChooseCommand(ctx context.Context, _, _ *game.Combatant) (CommandKind, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.next >= len(s.Commands) {
		return "", ErrScriptExhausted
	}
	c := s.Commands[s.next]
	s.next++
	s.pendingMove = c.Index
	return c.Kind, nil
}

func (s *ScriptedInput) ChooseMove(_ context.Context, _ *game.Combatant) (int, error) {
	return s.pendingMove, nil
}

func (s *ScriptedInput) ChooseReplacement(_ context.Context, _ []game.Combatant) (int, error) {
	if s.nextReplace >= len(s.Replacements) {
		return 0, ErrInvalidInput
	}
	slot := s.Replacements[s.nextReplace]
	s.nextReplace++
	return slot, nil
}

// Consumed reports how many commands were used.
func (s *ScriptedInput) Consumed() int { return s.next }
