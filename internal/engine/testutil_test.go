package engine

import (
	"testing"

	"github.com/ericogr/pocket-arena/internal/game"
)

// fixedDice replays 1-based d10 rolls and flee floats in order.
type fixedDice struct {
	rolls  []int
	floats []float64
}

func (d *fixedDice) Intn(n int) int {
	if len(d.rolls) == 0 {
		panic("fixedDice: out of rolls")
	}
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return (r - 1) % n
}

func (d *fixedDice) Float64() float64 {
	if len(d.floats) == 0 {
		panic("fixedDice: out of floats")
	}
	f := d.floats[0]
	d.floats = d.floats[1:]
	return f
}

// firstMove always picks slot 0.
type firstMove struct{}

func (firstMove) ChooseMove(*game.Combatant) int { return 0 }

func defaultTable(t testing.TB) *game.EffectivenessTable {
	t.Helper()
	table, err := game.NewEffectivenessTable(game.DefaultEffectivenessEntries())
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	return table
}

func flameragon() game.Combatant {
	return game.Combatant{
		Name: "Flameragon", Species: "flameragon", Affinity: game.AffinityFire,
		Attack: 52, Defense: 43, MaxHitPoints: 39, CurrentHitPoints: 39,
		Moves: []game.Move{
			{Slot: 0, Name: "Flamethrower", Power: 40, Affinity: game.AffinityFire},
			{Slot: 1, Name: "Ember", Power: 30, Affinity: game.AffinityFire},
			{Slot: 2, Name: "Claw", Power: 25, Affinity: game.AffinityNormal},
			{Slot: 3, Name: "Growl", Power: 0, Affinity: game.AffinityNormal},
		},
	}
}

func leafox() game.Combatant {
	return game.Combatant{
		Name: "Leafox", Species: "leafox", Affinity: game.AffinityPlant,
		Attack: 49, Defense: 49, MaxHitPoints: 45, CurrentHitPoints: 45,
		Moves: []game.Move{
			{Slot: 0, Name: "Vine Whip", Power: 40, Affinity: game.AffinityPlant},
			{Slot: 1, Name: "Growth", Power: 0, Affinity: game.AffinityNormal},
		},
	}
}

func aquatle() game.Combatant {
	return game.Combatant{
		Name: "Aquatle", Species: "aquatle", Affinity: game.AffinityWater,
		Attack: 48, Defense: 65, MaxHitPoints: 44, CurrentHitPoints: 44,
		Moves: []game.Move{{Slot: 0, Name: "Water Gun", Power: 40, Affinity: game.AffinityWater}},
	}
}

func trainerWith(members ...game.Combatant) *game.Trainer {
	tr := &game.Trainer{Name: "Ash"}
	for _, m := range members {
		if err := tr.AddCombatant(m); err != nil {
			panic(err)
		}
	}
	return tr
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
