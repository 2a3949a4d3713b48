package game

import (
	"errors"
	"fmt"
)

// Allowed effectiveness multipliers.
const (
	MultiplierWeak    = 0.5
	MultiplierNeutral = 1.0
	MultiplierStrong  = 2.0
)

var (
	ErrInvalidMultiplier = errors.New("multiplier must be one of 0.5, 1.0, 2.0")
	ErrDuplicatePair     = errors.New("duplicate effectiveness pair")
)

// AffinityPair is an ordered (attacker, defender) key.
type AffinityPair struct {
	Attacker Affinity
	Defender Affinity
}

// EffectivenessEntry is one row of the table as it appears in config and in
// API responses.
type EffectivenessEntry struct {
	Attacker   Affinity `json:"attacker" yaml:"attacker"`
	Defender   Affinity `json:"defender" yaml:"defender"`
	Multiplier float64  `json:"multiplier" yaml:"multiplier"`
}

// EffectivenessTable maps ordered affinity pairs to damage multipliers. The
// table is authoritative: fire->plant says nothing about plant->fire. Pairs
// that are absent yield 1.0. A table is read-only once built.
type EffectivenessTable struct {
	pairs   map[AffinityPair]float64
	entries []EffectivenessEntry
}

// NewEffectivenessTable validates entries and builds a table from them.
func NewEffectivenessTable(entries []EffectivenessEntry) (*EffectivenessTable, error) {
	t := &EffectivenessTable{
		pairs:   make(map[AffinityPair]float64, len(entries)),
		entries: make([]EffectivenessEntry, 0, len(entries)),
	}
	for _, e := range entries {
		att, err := ParseAffinity(string(e.Attacker))
		if err != nil {
			return nil, err
		}
		def, err := ParseAffinity(string(e.Defender))
		if err != nil {
			return nil, err
		}
		switch e.Multiplier {
		case MultiplierWeak, MultiplierNeutral, MultiplierStrong:
		default:
			return nil, fmt.Errorf("%w: %s->%s = %v", ErrInvalidMultiplier, att, def, e.Multiplier)
		}
		key := AffinityPair{Attacker: att, Defender: def}
		if _, dup := t.pairs[key]; dup {
			return nil, fmt.Errorf("%w: %s->%s", ErrDuplicatePair, att, def)
		}
		t.pairs[key] = e.Multiplier
		t.entries = append(t.entries, EffectivenessEntry{Attacker: att, Defender: def, Multiplier: e.Multiplier})
	}
	return t, nil
}

// Multiplier returns the multiplier for attacker hitting defender.
func (t *EffectivenessTable) Multiplier(attacker, defender Affinity) float64 {
	if t == nil {
		return MultiplierNeutral
	}
	if m, ok := t.pairs[AffinityPair{Attacker: attacker, Defender: defender}]; ok {
		return m
	}
	return MultiplierNeutral
}

// Entries returns a copy of the configured rows in their original order.
func (t *EffectivenessTable) Entries() []EffectivenessEntry {
	if t == nil {
		return nil
	}
	out := make([]EffectivenessEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// DefaultEffectivenessEntries is the classic fire/water/plant triangle with
// normal neutral against everything.
func DefaultEffectivenessEntries() []EffectivenessEntry {
	return []EffectivenessEntry{
		{AffinityFire, AffinityPlant, MultiplierStrong},
		{AffinityFire, AffinityWater, MultiplierWeak},
		{AffinityFire, AffinityNormal, MultiplierNeutral},
		{AffinityWater, AffinityFire, MultiplierStrong},
		{AffinityWater, AffinityPlant, MultiplierWeak},
		{AffinityWater, AffinityNormal, MultiplierNeutral},
		{AffinityPlant, AffinityWater, MultiplierStrong},
		{AffinityPlant, AffinityFire, MultiplierWeak},
		{AffinityPlant, AffinityNormal, MultiplierNeutral},
		{AffinityNormal, AffinityFire, MultiplierNeutral},
		{AffinityNormal, AffinityWater, MultiplierNeutral},
		{AffinityNormal, AffinityPlant, MultiplierNeutral},
	}
}
