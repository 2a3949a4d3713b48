package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/game"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate("sqlite", filepath.Join(t.TempDir(), "nested", "arena.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewGormRepository(db)
}

func species(name string, aff game.Affinity, hp int) game.Species {
	return game.Species{
		Key: name, Name: name, Affinity: aff, Attack: 50, Defense: 40, HitPoints: hp,
		Moves: []game.MoveTemplate{
			{Name: "Strike", Power: 35, Affinity: aff},
			{Name: "Tackle", Power: 25, Affinity: game.AffinityNormal},
		},
	}
}

func newTrainer(t *testing.T, repo Repository, name string, members ...game.Species) *game.Trainer {
	t.Helper()
	tr := &game.Trainer{Name: name, PublicID: uuid.NewString()}
	for _, s := range members {
		require.NoError(t, tr.AddCombatant(s.Spawn()))
	}
	require.NoError(t, repo.CreateTrainer(tr))
	return tr
}

func record(outcome game.BattleOutcome) *game.BattleRecord {
	return &game.BattleRecord{BattleID: uuid.NewString(), Opponent: "Glowfly", Outcome: outcome, Turns: 3}
}

func TestCreateAndLoadTrainer(t *testing.T) {
	repo := newTestRepo(t)
	newTrainer(t, repo, "Ash", species("Leafox", game.AffinityPlant, 45), species("Sparkit", game.AffinityFire, 35))

	got, err := repo.GetTrainerByName("Ash")
	require.NoError(t, err)
	require.Len(t, got.Roster, 2)
	assert.Equal(t, "Leafox", got.Roster[0].Name)
	assert.Equal(t, 1, got.Roster[1].Slot)
	require.Len(t, got.Roster[0].Moves, 2)
	assert.Equal(t, "Strike", got.Roster[0].Moves[0].Name)
	assert.Equal(t, 45, got.Roster[0].CurrentHitPoints)

	err = repo.CreateTrainer(&game.Trainer{Name: "Ash", PublicID: uuid.NewString()})
	assert.True(t, errors.Is(err, ErrTrainerExists), "got %v", err)

	_, err = repo.GetTrainerByName("Misty")
	assert.True(t, errors.Is(err, ErrTrainerNotFound), "got %v", err)
}

func TestSaveCheckpointPersistsHealthAndNewMembers(t *testing.T) {
	repo := newTestRepo(t)
	tr := newTrainer(t, repo, "Ash", species("Leafox", game.AffinityPlant, 45))

	tr.Roster[0].GainExperience(130)
	tr.Roster[0].CurrentHitPoints = 12
	tr.Potions = 1
	require.NoError(t, tr.AddCombatant(species("Wavefin", game.AffinityWater, 40).Spawn()))
	tr.ActiveSlot = 1
	require.NoError(t, repo.SaveCheckpoint(tr))

	got, err := repo.GetTrainerByName("Ash")
	require.NoError(t, err)
	require.Len(t, got.Roster, 2)
	assert.Equal(t, 12, got.Roster[0].CurrentHitPoints)
	assert.Equal(t, 50, got.Roster[0].MaxHitPoints)
	assert.Equal(t, 2, got.Roster[0].Level)
	assert.Equal(t, 30, got.Roster[0].Experience)
	assert.Equal(t, 1, got.Potions)
	assert.Equal(t, 1, got.Roster[1].Level)
	assert.Equal(t, "Wavefin", got.Roster[1].Name)
	assert.Len(t, got.Roster[1].Moves, 2)
	assert.Equal(t, 1, got.ActiveSlot)
}

func TestRecordBattleAndHistory(t *testing.T) {
	repo := newTestRepo(t)
	tr := newTrainer(t, repo, "Ash", species("Leafox", game.AffinityPlant, 45))

	tr.Roster[0].CurrentHitPoints = 0
	require.NoError(t, repo.RecordBattle(tr, record(game.OutcomeDefeat)))
	tr.RestoreAll()
	require.NoError(t, repo.RecordBattle(tr, record(game.OutcomeVictory)))

	got, err := repo.GetTrainerByName("Ash")
	require.NoError(t, err)
	assert.Equal(t, 45, got.Roster[0].CurrentHitPoints)

	hist, err := repo.GetHistory(tr.ID, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, game.OutcomeVictory, hist[0].Outcome, "newest first")

	hist, err = repo.GetHistory(tr.ID, 1)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestLeaderboardOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ash := newTrainer(t, repo, "Ash", species("Leafox", game.AffinityPlant, 45))
	misty := newTrainer(t, repo, "Misty", species("Wavefin", game.AffinityWater, 40))
	brock := newTrainer(t, repo, "Brock", species("Bushbug", game.AffinityPlant, 42))

	require.NoError(t, repo.RecordBattle(ash, record(game.OutcomeVictory)))
	require.NoError(t, repo.RecordBattle(misty, record(game.OutcomeVictory)))
	require.NoError(t, repo.RecordBattle(misty, record(game.OutcomeFled)))
	require.NoError(t, repo.RecordBattle(brock, record(game.OutcomeVictory)))
	require.NoError(t, repo.RecordBattle(brock, record(game.OutcomeVictory)))

	board, err := repo.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Brock", board[0].Name)
	assert.Equal(t, 2, board[0].Victories)
	assert.Equal(t, "Misty", board[1].Name, "ties on victories break on battles")
	assert.Equal(t, 2, board[1].Battles)
	assert.Equal(t, 1, board[1].Fled)
	assert.Equal(t, "Ash", board[2].Name)
}

func TestDeleteTrainerRemovesEverything(t *testing.T) {
	repo := newTestRepo(t)
	tr := newTrainer(t, repo, "Ash", species("Leafox", game.AffinityPlant, 45))
	require.NoError(t, repo.RecordBattle(tr, record(game.OutcomeVictory)))

	require.NoError(t, repo.DeleteTrainer("Ash"))
	_, err := repo.GetTrainerByName("Ash")
	assert.True(t, errors.Is(err, ErrTrainerNotFound))

	hist, err := repo.GetHistory(tr.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)

	// The name is free again once the hard delete committed.
	newTrainer(t, repo, "Ash", species("Sparkit", game.AffinityFire, 35))

	assert.True(t, errors.Is(repo.DeleteTrainer("Nobody"), ErrTrainerNotFound))
}
