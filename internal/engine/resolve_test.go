package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/game"
)

func plantDefender(hp int) *game.Combatant {
	return &game.Combatant{Name: "Bushbug", Affinity: game.AffinityPlant, Attack: 40, Defense: 43, MaxHitPoints: 200, CurrentHitPoints: hp}
}

func TestResolve_SuperEffectiveWithSTAB(t *testing.T) {
	attacker := flameragon()
	defender := plantDefender(200)
	r := NewResolver(defaultTable(t), &fixedDice{rolls: []int{5}})

	res, err := r.Resolve(&attacker.Moves[0], &attacker, defender)
	require.NoError(t, err)

	// floor(40 * 52 / 43 * 1.5 * 2.0) = floor(145.116...)
	assert.Equal(t, OutcomeBasic, res.Outcome)
	assert.Equal(t, 5, res.Roll)
	assert.Equal(t, 1.5, res.STAB)
	assert.Equal(t, 2.0, res.Multiplier)
	assert.Equal(t, EffectivenessSuper, res.Effectiveness)
	assert.Equal(t, 145, res.ComputedDamage)
	assert.Equal(t, 145, res.Damage)
	assert.Equal(t, 55, defender.CurrentHitPoints)
}

func TestResolve_ClampsToZero(t *testing.T) {
	attacker := flameragon()
	defender := plantDefender(39)
	r := NewResolver(defaultTable(t), &fixedDice{rolls: []int{5}})

	res, err := r.Resolve(&attacker.Moves[0], &attacker, defender)
	require.NoError(t, err)
	assert.Equal(t, 145, res.ComputedDamage)
	assert.Equal(t, 39, res.Damage)
	assert.Equal(t, 0, defender.CurrentHitPoints)
	assert.True(t, defender.Fainted())
}

func TestResolve_RollTable(t *testing.T) {
	table := defaultTable(t)
	tests := []struct {
		roll    int
		outcome Outcome
		damage  int
	}{
		// Claw: power 25, normal vs normal, no STAB. 25*50/50 = 25.
		{1, OutcomeNoEffect, 0},
		{2, OutcomeNoEffect, 0},
		{3, OutcomeBasic, 25},
		{7, OutcomeBasic, 25},
		{8, OutcomeDouble, 37},
		{9, OutcomeDouble, 37},
		{10, OutcomeLoseTurn, 0},
	}
	for _, tt := range tests {
		attacker := &game.Combatant{Name: "A", Affinity: game.AffinityFire, Attack: 50, MaxHitPoints: 10, CurrentHitPoints: 10}
		defender := &game.Combatant{Name: "D", Affinity: game.AffinityNormal, Defense: 50, MaxHitPoints: 100, CurrentHitPoints: 100}
		move := &game.Move{Name: "Claw", Power: 25, Affinity: game.AffinityNormal}

		res := NewResolver(table, nil).resolveRoll(tt.roll, move, attacker, defender)
		if res.Outcome != tt.outcome || res.Damage != tt.damage {
			t.Errorf("roll %d: got %s/%d, want %s/%d", tt.roll, res.Outcome, res.Damage, tt.outcome, tt.damage)
		}
		if res.Damage == 0 && res.Effectiveness != EffectivenessNeutral {
			t.Errorf("roll %d: zero damage should be neutral, got %s", tt.roll, res.Effectiveness)
		}
	}
}

func TestResolve_StatusMoveDealsNothing(t *testing.T) {
	attacker := flameragon()
	defender := plantDefender(200)
	r := NewResolver(defaultTable(t), &fixedDice{rolls: []int{9}})

	res, err := r.Resolve(&attacker.Moves[3], &attacker, defender)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDouble, res.Outcome)
	assert.Zero(t, res.Damage)
	assert.Equal(t, EffectivenessNeutral, res.Effectiveness)
	assert.Equal(t, 200, defender.CurrentHitPoints)
}

func TestResolve_DefenseFloorAndWeakness(t *testing.T) {
	attacker := leafox()
	defender := flameragon()
	defender.Defense = 0
	r := NewResolver(defaultTable(t), &fixedDice{rolls: []int{4}})

	res, err := r.Resolve(&attacker.Moves[0], &attacker, &defender)
	require.NoError(t, err)
	// 40 * 49 / 1 * 1.5 * 0.5 = 1470, clamped to 39.
	assert.Equal(t, 1470, res.ComputedDamage)
	assert.Equal(t, 39, res.Damage)
	assert.Equal(t, EffectivenessWeak, res.Effectiveness)
}

func TestResolve_RefusesFainted(t *testing.T) {
	r := NewResolver(defaultTable(t), &fixedDice{})
	attacker := flameragon()
	defender := leafox()

	attacker.CurrentHitPoints = 0
	if _, err := r.Resolve(&attacker.Moves[0], &attacker, &defender); !errors.Is(err, ErrAttackerFainted) {
		t.Fatalf("expected ErrAttackerFainted, got %v", err)
	}
	attacker.Restore()
	defender.CurrentHitPoints = 0
	if _, err := r.Resolve(&attacker.Moves[0], &attacker, &defender); !errors.Is(err, ErrTargetFainted) {
		t.Fatalf("expected ErrTargetFainted, got %v", err)
	}
	if _, err := r.Resolve(nil, &attacker, &defender); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestResolve_Properties(t *testing.T) {
	table := defaultTable(t)
	rapid.Check(t, func(rt *rapid.T) {
		attacker := &game.Combatant{
			Name:             "attacker",
			Affinity:         rapid.SampledFrom(game.Affinities).Draw(rt, "attacker_affinity"),
			Attack:           rapid.IntRange(0, 200).Draw(rt, "attack"),
			MaxHitPoints:     10,
			CurrentHitPoints: 10,
		}
		maxHP := rapid.IntRange(1, 300).Draw(rt, "max_hp")
		defender := &game.Combatant{
			Name:             "defender",
			Affinity:         rapid.SampledFrom(game.Affinities).Draw(rt, "defender_affinity"),
			Defense:          rapid.IntRange(0, 200).Draw(rt, "defense"),
			MaxHitPoints:     maxHP,
			CurrentHitPoints: maxHP,
		}
		move := &game.Move{
			Name:     "move",
			Power:    rapid.IntRange(0, 150).Draw(rt, "power"),
			Affinity: rapid.SampledFrom(game.Affinities).Draw(rt, "move_affinity"),
		}
		r := NewResolver(table, dice.New(rapid.Int64().Draw(rt, "seed")))

		calls := rapid.IntRange(1, 20).Draw(rt, "calls")
		for i := 0; i < calls && !defender.Fainted(); i++ {
			before := defender.CurrentHitPoints
			res, err := r.Resolve(move, attacker, defender)
			if err != nil {
				rt.Fatalf("resolve: %v", err)
			}
			if defender.CurrentHitPoints < 0 || defender.CurrentHitPoints > defender.MaxHitPoints {
				rt.Fatalf("HP out of range: %d/%d", defender.CurrentHitPoints, defender.MaxHitPoints)
			}
			if res.Damage != before-defender.CurrentHitPoints {
				rt.Fatalf("reported damage %d, HP dropped %d", res.Damage, before-defender.CurrentHitPoints)
			}
			if res.Roll < 1 || res.Roll > RollSides {
				rt.Fatalf("roll out of range: %d", res.Roll)
			}
			if move.Power == 0 && res.Damage != 0 {
				rt.Fatalf("status move dealt %d", res.Damage)
			}
			switch res.Multiplier {
			case game.MultiplierWeak, game.MultiplierNeutral, game.MultiplierStrong:
			default:
				rt.Fatalf("multiplier %v not allowed", res.Multiplier)
			}
			hit := res.Outcome == OutcomeBasic || res.Outcome == OutcomeDouble
			if hit && move.Power > 0 {
				wantSTAB := 1.0
				if move.Affinity == attacker.Affinity {
					wantSTAB = 1.5
				}
				if res.STAB != wantSTAB {
					rt.Fatalf("STAB = %v, want %v", res.STAB, wantSTAB)
				}
				if want := table.Multiplier(attacker.Affinity, defender.Affinity); res.Multiplier != want {
					rt.Fatalf("multiplier = %v, want %v", res.Multiplier, want)
				}
			}
		}
	})
}
