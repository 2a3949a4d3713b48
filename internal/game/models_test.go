package game

import (
	"errors"
	"testing"
)

func testSpecies(name string, aff Affinity, hp int) Species {
	return Species{
		Name:      name,
		Affinity:  aff,
		Attack:    50,
		Defense:   40,
		HitPoints: hp,
		Moves:     []MoveTemplate{{Name: "Tackle", Power: 35, Affinity: AffinityNormal}},
	}
}

func TestCombatant_TakeDamageClamps(t *testing.T) {
	c := testSpecies("Sparkit", AffinityFire, 35).Spawn()
	if got := c.TakeDamage(10); got != 10 {
		t.Fatalf("TakeDamage(10) = %d, want 10", got)
	}
	if got := c.TakeDamage(144); got != 25 {
		t.Fatalf("TakeDamage(144) = %d, want 25", got)
	}
	if c.CurrentHitPoints != 0 || !c.Fainted() {
		t.Fatalf("expected fainted at 0 HP, got %d", c.CurrentHitPoints)
	}
	if got := c.TakeDamage(-5); got != 0 {
		t.Fatalf("negative damage applied %d", got)
	}
	c.Restore()
	if c.CurrentHitPoints != 35 {
		t.Fatalf("Restore: HP = %d, want 35", c.CurrentHitPoints)
	}
}

func TestTrainer_Roster(t *testing.T) {
	tr := &Trainer{Name: "Ash"}
	if tr.Active() != nil {
		t.Fatalf("empty roster should have no active member")
	}
	for i := 0; i < MaxRosterSize; i++ {
		if err := tr.AddCombatant(testSpecies("Normie", AffinityNormal, 50).Spawn()); err != nil {
			t.Fatalf("AddCombatant #%d: %v", i, err)
		}
	}
	if err := tr.AddCombatant(testSpecies("Normie", AffinityNormal, 50).Spawn()); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	if tr.Roster[3].Slot != 3 {
		t.Fatalf("slot not assigned: %d", tr.Roster[3].Slot)
	}

	tr.Roster[1].CurrentHitPoints = 0
	if err := tr.SwitchActive(1); !errors.Is(err, ErrCombatantFainted) {
		t.Fatalf("expected ErrCombatantFainted, got %v", err)
	}
	if err := tr.SwitchActive(9); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if err := tr.SwitchActive(2); err != nil || tr.Active() != &tr.Roster[2] {
		t.Fatalf("SwitchActive(2) failed: %v", err)
	}

	for i := range tr.Roster {
		tr.Roster[i].CurrentHitPoints = 0
	}
	if tr.HasAlive() || tr.FirstAlive() != -1 {
		t.Fatalf("expected no alive members")
	}
	tr.RestoreAll()
	if tr.FirstAlive() != 0 {
		t.Fatalf("RestoreAll did not heal roster")
	}
}

func TestEffectivenessTable(t *testing.T) {
	table, err := NewEffectivenessTable(DefaultEffectivenessEntries())
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	tests := []struct {
		att, def Affinity
		want     float64
	}{
		{AffinityFire, AffinityPlant, 2.0},
		{AffinityPlant, AffinityFire, 0.5},
		{AffinityWater, AffinityFire, 2.0},
		{AffinityFire, AffinityFire, 1.0},
		{AffinityNormal, AffinityNormal, 1.0},
	}
	for _, tt := range tests {
		if got := table.Multiplier(tt.att, tt.def); got != tt.want {
			t.Errorf("Multiplier(%s, %s) = %v, want %v", tt.att, tt.def, got, tt.want)
		}
	}

	entries := table.Entries()
	entries[0].Multiplier = 0.5
	if table.Multiplier(AffinityFire, AffinityPlant) != 2.0 {
		t.Fatalf("Entries must return a copy")
	}
}

func TestEffectivenessTable_Rejects(t *testing.T) {
	if _, err := NewEffectivenessTable([]EffectivenessEntry{{AffinityFire, AffinityPlant, 3}}); !errors.Is(err, ErrInvalidMultiplier) {
		t.Fatalf("expected ErrInvalidMultiplier, got %v", err)
	}
	if _, err := NewEffectivenessTable([]EffectivenessEntry{{"lava", AffinityPlant, 2}}); !errors.Is(err, ErrUnknownAffinity) {
		t.Fatalf("expected ErrUnknownAffinity, got %v", err)
	}
	dup := []EffectivenessEntry{{AffinityFire, AffinityPlant, 2}, {AffinityFire, AffinityPlant, 0.5}}
	if _, err := NewEffectivenessTable(dup); !errors.Is(err, ErrDuplicatePair) {
		t.Fatalf("expected ErrDuplicatePair, got %v", err)
	}
}

func TestCatalog(t *testing.T) {
	starter := testSpecies("Leafox", "Plant", 45)
	starter.Starter = true
	cat, err := NewCatalog([]Species{starter, testSpecies("Rock Toise", AffinityNormal, 44)})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	s, ok := cat.Get("rock toise")
	if !ok || s.Key != "rock_toise" {
		t.Fatalf("lookup by display name failed: %+v", s)
	}
	if l, _ := cat.Get("LEAFOX"); l.Affinity != AffinityPlant {
		t.Fatalf("affinity not normalized: %q", l.Affinity)
	}
	if got := len(cat.Starters()); got != 1 {
		t.Fatalf("Starters() = %d, want 1", got)
	}
	c := s.Spawn()
	if c.CurrentHitPoints != c.MaxHitPoints || len(c.Moves) != 1 || c.Moves[0].Slot != 0 {
		t.Fatalf("bad spawn: %+v", c)
	}

	if _, err := NewCatalog([]Species{starter, starter}); !errors.Is(err, ErrDuplicateSpecies) {
		t.Fatalf("expected ErrDuplicateSpecies, got %v", err)
	}
	noMoves := testSpecies("Glowfly", AffinityNormal, 40)
	noMoves.Moves = nil
	if _, err := NewCatalog([]Species{noMoves}); !errors.Is(err, ErrInvalidSpecies) {
		t.Fatalf("expected ErrInvalidSpecies, got %v", err)
	}
}

func TestCombatant_Heal(t *testing.T) {
	c := testSpecies("Leafox", AffinityPlant, 45).Spawn()
	c.CurrentHitPoints = 40
	if got := c.Heal(PotionHeal); got != 5 || c.CurrentHitPoints != 45 {
		t.Fatalf("Heal capped: got %d, HP %d", got, c.CurrentHitPoints)
	}
	c.CurrentHitPoints = 10
	if got := c.Heal(PotionHeal); got != 15 || c.CurrentHitPoints != 25 {
		t.Fatalf("Heal(15): got %d, HP %d", got, c.CurrentHitPoints)
	}
	c.CurrentHitPoints = 0
	if got := c.Heal(PotionHeal); got != 0 || !c.Fainted() {
		t.Fatalf("fainted combatant healed by %d", got)
	}
}

func TestCombatant_GainExperience(t *testing.T) {
	c := testSpecies("Sparkit", AffinityFire, 35).Spawn()
	if c.Level != 1 {
		t.Fatalf("spawned level = %d, want 1", c.Level)
	}
	c.CurrentHitPoints = 3
	if got := c.GainExperience(99); got != 0 || c.Experience != 99 {
		t.Fatalf("no level-up expected: got %d, xp %d", got, c.Experience)
	}
	// 99 + 321 = 420: 100 for level 1, 200 for level 2, 120 left toward 300.
	if got := c.GainExperience(321); got != 2 {
		t.Fatalf("levels gained = %d, want 2", got)
	}
	if c.Level != 3 || c.Experience != 120 {
		t.Fatalf("level %d xp %d, want 3 / 120", c.Level, c.Experience)
	}
	if c.MaxHitPoints != 45 || c.Attack != 52 || c.Defense != 42 || c.CurrentHitPoints != 45 {
		t.Fatalf("stats after two level-ups: %+v", c)
	}

	legacy := Combatant{MaxHitPoints: 10, CurrentHitPoints: 10}
	if got := legacy.GainExperience(100); got != 1 || legacy.Level != 2 {
		t.Fatalf("zero level should count as 1: gained %d level %d", got, legacy.Level)
	}
}
