package engine

import (
	"fmt"

	"github.com/ericogr/pocket-arena/internal/game"
)

// Side identifies who acted in an event.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

type EventKind string

const (
	EventEncounter     EventKind = "encounter"
	EventMove          EventKind = "move"
	EventStatus        EventKind = "status"
	EventDefend        EventKind = "defend"
	EventItem          EventKind = "item"
	EventInvalidChoice EventKind = "invalid_choice"
	EventFainted       EventKind = "fainted"
	EventSwitch        EventKind = "switch"
	EventFleeFailed    EventKind = "flee_failed"
	EventFled          EventKind = "fled"
	EventVictory       EventKind = "victory"
	EventDefeat        EventKind = "defeat"
)

// Event is a single observable battle step.
type Event struct {
	Kind        EventKind   `json:"kind"`
	Turn        int         `json:"turn"`
	Side        Side        `json:"side,omitempty"`
	Actor       string      `json:"actor,omitempty"`
	Target      string      `json:"target,omitempty"`
	Result      *MoveResult `json:"result,omitempty"`
	TargetHP    int         `json:"target_hp"`
	TargetMaxHP int         `json:"target_max_hp"`
	Message     string      `json:"message"`
}

// Reporter receives every event as it happens.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

type discardReporter struct{}

func (discardReporter) Report(Event) {}

// --- Event builders ----------------------------------------------------
func (b *Battle) moveEvent(side Side, actor, target *game.Combatant, res MoveResult) Event {
	return Event{
		Kind:        EventMove,
		Turn:        b.turn,
		Side:        side,
		Actor:       displayName(actor),
		Target:      displayName(target),
		Result:      &res,
		TargetHP:    target.CurrentHitPoints,
		TargetMaxHP: target.MaxHitPoints,
		Message:     describeMove(actor, target, res),
	}
}

func (b *Battle) faintEvent(side Side, c *game.Combatant) Event {
	return Event{
		Kind:        EventFainted,
		Turn:        b.turn,
		Side:        side,
		Actor:       displayName(c),
		TargetMaxHP: c.MaxHitPoints,
		Message:     displayName(c) + " fainted!",
	}
}

func (b *Battle) statusEvent(active *game.Combatant) Event {
	return Event{
		Kind:        EventStatus,
		Turn:        b.turn,
		Side:        SidePlayer,
		Actor:       displayName(active),
		Target:      displayName(b.opponent),
		TargetHP:    b.opponent.CurrentHitPoints,
		TargetMaxHP: b.opponent.MaxHitPoints,
		Message:     hpLine(active) + " | " + hpLine(b.opponent),
	}
}

func (b *Battle) invalidEvent(reason string) Event {
	return Event{Kind: EventInvalidChoice, Turn: b.turn, Side: SidePlayer, Message: "Invalid choice: " + reason}
}

func (b *Battle) switchEvent(prev, next *game.Combatant, auto bool) Event {
	msg := fmt.Sprintf("%s, come back! Go, %s!", displayName(prev), displayName(next))
	if auto {
		msg = fmt.Sprintf("%s steps in for %s.", displayName(next), displayName(prev))
	}
	return Event{
		Kind:        EventSwitch,
		Turn:        b.turn,
		Side:        SidePlayer,
		Actor:       displayName(next),
		TargetHP:    next.CurrentHitPoints,
		TargetMaxHP: next.MaxHitPoints,
		Message:     msg,
	}
}
