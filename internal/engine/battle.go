package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

const (
	// FleeChance is the probability a flee attempt succeeds.
	FleeChance = 0.5
	// DefendBonus is added to the active combatant's defense for the
	// opponent's next attack only.
	DefendBonus = 3
)

var (
	ErrNoCombatant  = errors.New("trainer has no combatant able to battle")
	ErrInvalidState = errors.New("invalid battle state")
)

// State is a node of the battle state machine.
type State string

const (
	StateStart            State = "start"
	StatePlayerTurn       State = "player_turn"
	StateApplyResult      State = "apply_result"
	StateEnemyTurn        State = "enemy_turn"
	StateCheckTermination State = "check_termination"
	StateVictory          State = "victory"
	StateDefeat           State = "defeat"
	StateFled             State = "fled"
)

// Terminal reports whether the battle is over in this state.
func (s State) Terminal() bool {
	return s == StateVictory || s == StateDefeat || s == StateFled
}

// Outcome maps a terminal state to the persisted outcome.
func (s State) Outcome() (game.BattleOutcome, bool) {
	switch s {
	case StateVictory:
		return game.OutcomeVictory, true
	case StateDefeat:
		return game.OutcomeDefeat, true
	case StateFled:
		return game.OutcomeFled, true
	}
	return "", false
}

// Result summarizes a finished (or aborted) battle.
type Result struct {
	State    State   `json:"state"`
	Turns    int     `json:"turns"`
	Opponent string  `json:"opponent"`
	Events   []Event `json:"events"`
	Summary  string  `json:"summary"`
}

// Battle drives one encounter between a trainer's roster and a wild
// opponent. It mutates the roster and the opponent in place.
type Battle struct {
	trainer  *game.Trainer
	opponent *game.Combatant
	resolver *Resolver
	input    PlayerInput
	enemy    MoveChooser
	bc       *battleContext

	state   State
	turn    int
	pending *Event
	guard   int
}

// NewBattle wires a battle. The opponent picks moves at random from the
// resolver's dice unless WithOpponentChooser says otherwise.
func NewBattle(trainer *game.Trainer, opponent *game.Combatant, resolver *Resolver, input PlayerInput) *Battle {
	return &Battle{
		trainer:  trainer,
		opponent: opponent,
		resolver: resolver,
		input:    input,
		enemy:    RandomMoves{Dice: resolver.dice},
		bc:       newBattleContext(nil),
		state:    StateStart,
	}
}

// WithReporter sets the event sink.
func (b *Battle) WithReporter(r Reporter) *Battle {
	if r == nil {
		r = discardReporter{}
	}
	b.bc.reporter = r
	return b
}

// WithOpponentChooser overrides how the opponent picks its move.
func (b *Battle) WithOpponentChooser(c MoveChooser) *Battle {
	b.enemy = c
	return b
}

func (b *Battle) State() State { return b.state }
func (b *Battle) Turns() int   { return b.turn }

// CheckTermination inspects health only and never mutates the battle.
func (b *Battle) CheckTermination() State {
	if b.opponent.Fainted() {
		return StateVictory
	}
	if !b.trainer.HasAlive() {
		return StateDefeat
	}
	return StatePlayerTurn
}

// Run drives the state machine until a terminal state is reached, the
// input fails, or ctx is cancelled.
func (b *Battle) Run(ctx context.Context) (Result, error) {
	if b.state != StateStart {
		return b.result(), fmt.Errorf("%w: battle already started", ErrInvalidState)
	}
	if err := b.start(); err != nil {
		return b.result(), err
	}
	for !b.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return b.result(), err
		}
		var err error
		switch b.state {
		case StatePlayerTurn:
			err = b.playerTurn(ctx)
		case StateApplyResult:
			b.applyResult()
		case StateEnemyTurn:
			err = b.enemyTurn()
		case StateCheckTermination:
			err = b.checkTermination(ctx)
		default:
			err = fmt.Errorf("%w: %s", ErrInvalidState, b.state)
		}
		if err != nil {
			return b.result(), err
		}
	}
	return b.result(), nil
}

func (b *Battle) start() error {
	if b.opponent == nil || b.opponent.Fainted() {
		return ErrTargetFainted
	}
	if len(b.opponent.Moves) == 0 {
		return fmt.Errorf("%w: %s has no moves", ErrInvalidMove, displayName(b.opponent))
	}
	if !b.trainer.HasAlive() {
		return ErrNoCombatant
	}
	if a := b.trainer.Active(); a == nil || a.Fainted() {
		b.trainer.ActiveSlot = b.trainer.FirstAlive()
	}
	active := b.trainer.Active()
	b.bc.add(Event{
		Kind:        EventEncounter,
		Side:        SideOpponent,
		Actor:       displayName(b.opponent),
		Target:      displayName(active),
		TargetHP:    b.opponent.CurrentHitPoints,
		TargetMaxHP: b.opponent.MaxHitPoints,
		Message:     fmt.Sprintf("A wild %s appeared! Go, %s!", displayName(b.opponent), displayName(active)),
	})
	b.state = StatePlayerTurn
	return nil
}

func (b *Battle) playerTurn(ctx context.Context) error {
	active := b.trainer.Active()
	kind, err := b.input.ChooseCommand(ctx, active, b.opponent)
	if errors.Is(err, ErrInvalidInput) {
		b.bc.add(b.invalidEvent("unknown command"))
		return nil
	}
	if err != nil {
		return err
	}

	switch kind {
	case CommandStatus:
		b.bc.add(b.statusEvent(active))
	case CommandFlee:
		b.turn++
		if b.resolver.dice.Float64() < FleeChance {
			b.bc.add(Event{Kind: EventFled, Turn: b.turn, Side: SidePlayer, Actor: displayName(active), Message: "Got away safely!"})
			b.state = StateFled
			return nil
		}
		b.bc.add(Event{Kind: EventFleeFailed, Turn: b.turn, Side: SidePlayer, Actor: displayName(active), Message: "Couldn't get away!"})
		b.state = StateEnemyTurn
	case CommandDefend:
		b.turn++
		b.guard = DefendBonus
		b.bc.add(Event{
			Kind:        EventDefend,
			Turn:        b.turn,
			Side:        SidePlayer,
			Actor:       displayName(active),
			TargetHP:    active.CurrentHitPoints,
			TargetMaxHP: active.MaxHitPoints,
			Message:     fmt.Sprintf("%s braces for the next attack! (+%d defense)", displayName(active), DefendBonus),
		})
		b.state = StateEnemyTurn
	case CommandItem:
		if b.trainer.Potions <= 0 {
			b.bc.add(b.invalidEvent("no potions left"))
			return nil
		}
		b.turn++
		b.trainer.Potions--
		healed := active.Heal(game.PotionHeal)
		b.bc.add(Event{
			Kind:        EventItem,
			Turn:        b.turn,
			Side:        SidePlayer,
			Actor:       displayName(active),
			TargetHP:    active.CurrentHitPoints,
			TargetMaxHP: active.MaxHitPoints,
			Message:     fmt.Sprintf("%s drinks a potion and recovers %d HP. (%d left)", displayName(active), healed, b.trainer.Potions),
		})
		b.state = StateEnemyTurn
	case CommandFight:
		idx, err := b.input.ChooseMove(ctx, active)
		if errors.Is(err, ErrInvalidInput) {
			b.bc.add(b.invalidEvent("unknown move"))
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(active.Moves) {
			b.bc.add(b.invalidEvent(fmt.Sprintf("move %d does not exist", idx+1)))
			return nil
		}
		b.turn++
		res, err := b.resolver.Resolve(&active.Moves[idx], active, b.opponent)
		if err != nil {
			return err
		}
		ev := b.moveEvent(SidePlayer, active, b.opponent, res)
		b.pending = &ev
		b.state = StateApplyResult
	default:
		b.bc.add(b.invalidEvent(fmt.Sprintf("unknown command %q", kind)))
	}
	return nil
}

// applyResult publishes the player's move and ends the battle when the
// opponent went down; a fainted opponent never retaliates.
func (b *Battle) applyResult() {
	if b.pending != nil {
		b.bc.add(*b.pending)
		b.pending = nil
	}
	if b.opponent.Fainted() {
		b.bc.add(b.faintEvent(SideOpponent, b.opponent))
		b.finish(StateVictory)
		return
	}
	b.state = StateEnemyTurn
}

func (b *Battle) enemyTurn() error {
	active := b.trainer.Active()
	idx := b.enemy.ChooseMove(b.opponent)
	if idx < 0 || idx >= len(b.opponent.Moves) {
		idx = 0
	}
	// The defend bonus covers exactly this attack.
	guard := b.guard
	b.guard = 0
	active.Defense += guard
	res, err := b.resolver.Resolve(&b.opponent.Moves[idx], b.opponent, active)
	active.Defense -= guard
	if err != nil {
		return err
	}
	b.bc.add(b.moveEvent(SideOpponent, b.opponent, active, res))
	if active.Fainted() {
		b.bc.add(b.faintEvent(SidePlayer, active))
	}
	b.state = StateCheckTermination
	return nil
}

func (b *Battle) checkTermination(ctx context.Context) error {
	next := b.CheckTermination()
	if next.Terminal() {
		b.finish(next)
		return nil
	}
	if b.trainer.Active().Fainted() {
		if err := b.replaceActive(ctx); err != nil {
			return err
		}
	}
	b.state = next
	return nil
}

// replaceActive asks the player for a replacement and falls back to the
// first alive roster member on an invalid choice. Switching after a faint
// does not consume a turn.
func (b *Battle) replaceActive(ctx context.Context) error {
	prev := b.trainer.Active()
	slot, err := b.input.ChooseReplacement(ctx, b.trainer.Roster)
	if err != nil && !errors.Is(err, ErrInvalidInput) {
		return err
	}
	auto := err != nil || b.trainer.SwitchActive(slot) != nil
	if auto {
		b.trainer.ActiveSlot = b.trainer.FirstAlive()
	}
	b.bc.add(b.switchEvent(prev, b.trainer.Active(), auto))
	return nil
}

func (b *Battle) finish(s State) {
	b.state = s
	switch s {
	case StateVictory:
		b.bc.add(Event{Kind: EventVictory, Turn: b.turn, Side: SidePlayer, Actor: displayName(b.trainer.Active()), Message: "You won the battle!"})
	case StateDefeat:
		b.bc.add(Event{Kind: EventDefeat, Turn: b.turn, Side: SideOpponent, Actor: displayName(b.opponent), Message: "All your combatants fainted. You lost the battle."})
	}
}

func (b *Battle) result() Result {
	return Result{
		State:    b.state,
		Turns:    b.turn,
		Opponent: displayName(b.opponent),
		Events:   b.bc.snapshot(),
		Summary:  b.bc.joinSummary(),
	}
}
