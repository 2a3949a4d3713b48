package storage

import (
	"errors"

	"github.com/ericogr/pocket-arena/internal/game"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrTrainerExists   = errors.New("trainer already exists")
)

// LeaderboardEntry aggregates a trainer's battle history.
type LeaderboardEntry struct {
	Name      string `json:"name"`
	Battles   int    `json:"battles"`
	Victories int    `json:"victories"`
	Defeats   int    `json:"defeats"`
	Fled      int    `json:"fled"`
}

// Repository persists trainers, rosters and battle history. Writes happen
// only at explicit checkpoints.
type Repository interface {
	CreateTrainer(t *game.Trainer) error
	// GetTrainerByName returns the trainer with roster and moves ordered by
	// slot.
	GetTrainerByName(name string) (*game.Trainer, error)
	ListTrainers() ([]game.Trainer, error)
	// SaveCheckpoint writes the trainer and its whole roster.
	SaveCheckpoint(t *game.Trainer) error
	// RecordBattle saves the roster and appends rec in one transaction.
	RecordBattle(t *game.Trainer, rec *game.BattleRecord) error
	// GetHistory returns the newest records first. limit <= 0 means all.
	GetHistory(trainerID uint, limit int) ([]game.BattleRecord, error)
	// Leaderboard ordered by victories desc, then battles desc.
	GetLeaderboard(limit int) ([]LeaderboardEntry, error)
	// DeleteTrainer hard-deletes the trainer, roster, moves and records.
	DeleteTrainer(name string) error
}
