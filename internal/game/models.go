package game

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Affinity is the elemental category of a combatant or a move.
type Affinity string

const (
	AffinityFire   Affinity = "fire"
	AffinityWater  Affinity = "water"
	AffinityPlant  Affinity = "plant"
	AffinityNormal Affinity = "normal"
)

// Affinities lists the closed set of known affinities in display order.
var Affinities = []Affinity{AffinityFire, AffinityWater, AffinityPlant, AffinityNormal}

var ErrUnknownAffinity = errors.New("unknown affinity")

// ParseAffinity maps a config or request string onto the closed affinity set.
func ParseAffinity(s string) (Affinity, error) {
	a := Affinity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Affinities {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAffinity, s)
}

// MaxRosterSize is the number of combatants a trainer may carry.
const MaxRosterSize = 6

var (
	ErrRosterFull       = errors.New("roster is full")
	ErrInvalidSlot      = errors.New("invalid roster slot")
	ErrCombatantFainted = errors.New("combatant has fainted")
)

// Move is a single attack owned by one combatant. Power 0 marks a status
// move that never deals direct damage. Rows are written once and never
// updated.
type Move struct {
	gorm.Model
	CombatantID uint     `json:"-" gorm:"index"`
	Slot        int      `json:"slot"`
	Name        string   `json:"name" gorm:"size:64"`
	Power       int      `json:"power"`
	Affinity    Affinity `json:"affinity" gorm:"size:16"`
}

func (Move) TableName() string { return "roster_moves" }

// Combatant is a creature in a trainer's roster, or a wild opponent that
// only lives for the duration of an encounter.
type Combatant struct {
	gorm.Model
	TrainerID        uint     `json:"-" gorm:"index"`
	Slot             int      `json:"slot"`
	Species          string   `json:"species" gorm:"size:64"`
	Name             string   `json:"name" gorm:"size:64"`
	Affinity         Affinity `json:"affinity" gorm:"size:16"`
	Ability          string   `json:"ability" gorm:"size:64"`
	Attack           int      `json:"attack"`
	Defense          int      `json:"defense"`
	MaxHitPoints     int      `json:"max_hp"`
	CurrentHitPoints int      `json:"current_hp"`
	Level            int      `json:"level" gorm:"default:1"`
	Experience       int      `json:"xp"`
	Moves            []Move   `json:"moves" gorm:"constraint:OnDelete:CASCADE;"`
}

// Store roster members under a name that says what they are.
func (Combatant) TableName() string { return "roster_members" }

// Fainted reports whether the combatant is at 0 HP.
func (c *Combatant) Fainted() bool { return c.CurrentHitPoints <= 0 }

// TakeDamage lowers current HP by n, never below 0, and returns the HP
// actually removed.
func (c *Combatant) TakeDamage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > c.CurrentHitPoints {
		n = c.CurrentHitPoints
	}
	c.CurrentHitPoints -= n
	return n
}

// Restore heals the combatant back to full health.
func (c *Combatant) Restore() { c.CurrentHitPoints = c.MaxHitPoints }

// Heal adds up to n HP without exceeding max and returns the HP restored.
// Fainted combatants cannot be healed in battle.
func (c *Combatant) Heal(n int) int {
	if n <= 0 || c.Fainted() {
		return 0
	}
	if room := c.MaxHitPoints - c.CurrentHitPoints; n > room {
		n = room
	}
	c.CurrentHitPoints += n
	return n
}

const (
	// PotionHeal is the HP a potion restores.
	PotionHeal = 15
	// StartingPotions is what a new trainer carries and what resting
	// restocks to.
	StartingPotions = 2

	levelUpHitPoints = 5
)

// ExperienceForLevel is the XP needed to advance from level.
func ExperienceForLevel(level int) int { return 100 * level }

// GainExperience adds n XP and applies every level-up it pays for: +5 max
// HP, +1 attack, +1 defense and a full heal each. It returns the number of
// levels gained.
func (c *Combatant) GainExperience(n int) int {
	if c.Level < 1 {
		c.Level = 1
	}
	if n <= 0 {
		return 0
	}
	c.Experience += n
	gained := 0
	for c.Experience >= ExperienceForLevel(c.Level) {
		c.Experience -= ExperienceForLevel(c.Level)
		c.Level++
		c.MaxHitPoints += levelUpHitPoints
		c.Attack++
		c.Defense++
		c.Restore()
		gained++
	}
	return gained
}

// Trainer owns a roster and a battle history. The roster is ordered by slot
// and ActiveSlot indexes into it.
type Trainer struct {
	gorm.Model
	PublicID   string      `json:"public_id" gorm:"uniqueIndex;size:36"`
	Name       string      `json:"name" gorm:"uniqueIndex;size:32"`
	Roster     []Combatant `json:"roster" gorm:"constraint:OnDelete:CASCADE;"`
	ActiveSlot int         `json:"active_slot"`
	Potions    int         `json:"potions"`
}

func (Trainer) TableName() string { return "trainers" }

// Active returns the active roster member, or nil for an empty roster.
func (t *Trainer) Active() *Combatant {
	if t.ActiveSlot < 0 || t.ActiveSlot >= len(t.Roster) {
		return nil
	}
	return &t.Roster[t.ActiveSlot]
}

// AddCombatant appends c to the roster. The first member becomes active.
func (t *Trainer) AddCombatant(c Combatant) error {
	if len(t.Roster) >= MaxRosterSize {
		return ErrRosterFull
	}
	c.Slot = len(t.Roster)
	t.Roster = append(t.Roster, c)
	if len(t.Roster) == 1 {
		t.ActiveSlot = 0
	}
	return nil
}

// SwitchActive makes the member at slot active. Fainted members cannot be
// sent out.
func (t *Trainer) SwitchActive(slot int) error {
	if slot < 0 || slot >= len(t.Roster) {
		return ErrInvalidSlot
	}
	if t.Roster[slot].Fainted() {
		return ErrCombatantFainted
	}
	t.ActiveSlot = slot
	return nil
}

// FirstAlive returns the slot of the first member with HP left, or -1.
func (t *Trainer) FirstAlive() int {
	for i := range t.Roster {
		if !t.Roster[i].Fainted() {
			return i
		}
	}
	return -1
}

// HasAlive reports whether any roster member can still fight.
func (t *Trainer) HasAlive() bool { return t.FirstAlive() >= 0 }

// RestoreAll heals every roster member.
func (t *Trainer) RestoreAll() {
	for i := range t.Roster {
		t.Roster[i].Restore()
	}
}

// BattleOutcome is the final classification stored in the history log.
type BattleOutcome string

const (
	OutcomeVictory BattleOutcome = "victory"
	OutcomeDefeat  BattleOutcome = "defeat"
	OutcomeFled    BattleOutcome = "fled"
)

// BattleRecord is one entry in a trainer's battle history.
type BattleRecord struct {
	gorm.Model
	TrainerID uint          `json:"-" gorm:"index"`
	BattleID  string        `json:"battle_id" gorm:"uniqueIndex;size:36"`
	Opponent  string        `json:"opponent" gorm:"size:64"`
	Outcome   BattleOutcome `json:"outcome" gorm:"size:16;index"`
	Turns     int           `json:"turns"`
	XPGained  int           `json:"xp_gained"`
	LevelUps  int           `json:"level_ups"`
	Summary   string        `json:"summary"`
}

func (BattleRecord) TableName() string { return "battle_records" }
