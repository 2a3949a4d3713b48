// Package dice provides the randomness abstraction used by the battle engine
// and the exploration map. Every random decision goes through a Dice so tests
// can force rolls.
package dice

import (
	"math/rand"
	"time"
)

// Dice is the randomness provider. *rand.Rand satisfies it.
type Dice interface {
	// Intn returns a non-negative random int in [0, n). n must be > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// New returns a deterministic Dice for the given seed.
func New(seed int64) Dice {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeeded returns a Dice seeded from the wall clock.
func NewTimeSeeded() Dice {
	return New(time.Now().UnixNano())
}
