package service

import (
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/storage"
)

type mockRepo struct {
	trainers    map[string]*game.Trainer
	records     []game.BattleRecord
	checkpoints []game.Trainer
	saves       int
	recordErr   error
	deleteCalls []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{trainers: map[string]*game.Trainer{}}
}

func (m *mockRepo) CreateTrainer(t *game.Trainer) error {
	if _, ok := m.trainers[t.Name]; ok {
		return storage.ErrTrainerExists
	}
	m.trainers[t.Name] = t
	return nil
}

func (m *mockRepo) GetTrainerByName(name string) (*game.Trainer, error) {
	if t, ok := m.trainers[name]; ok {
		return t, nil
	}
	return nil, storage.ErrTrainerNotFound
}

func (m *mockRepo) SaveCheckpoint(t *game.Trainer) error {
	m.saves++
	m.trainers[t.Name] = t
	return nil
}

func (m *mockRepo) RecordBattle(t *game.Trainer, rec *game.BattleRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.saves++
	m.records = append(m.records, *rec)
	snap := *t
	snap.Roster = append([]game.Combatant(nil), t.Roster...)
	m.checkpoints = append(m.checkpoints, snap)
	return nil
}

func (m *mockRepo) DeleteTrainer(name string) error {
	m.deleteCalls = append(m.deleteCalls, name)
	if _, ok := m.trainers[name]; !ok {
		return storage.ErrTrainerNotFound
	}
	delete(m.trainers, name)
	return nil
}

// scriptedDice replays 1-based d10 rolls, then flee floats.
type scriptedDice struct {
	rolls  []int
	floats []float64
}

func (d *scriptedDice) Intn(n int) int {
	if len(d.rolls) == 0 {
		return 0
	}
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return (r - 1) % n
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0
	}
	f := d.floats[0]
	d.floats = d.floats[1:]
	return f
}

func testCatalog() *game.Catalog {
	c, err := game.NewCatalog([]game.Species{
		{Name: "Flameragon", Affinity: game.AffinityFire, Attack: 52, Defense: 43, HitPoints: 39, Starter: true,
			Moves: []game.MoveTemplate{{Name: "Flamethrower", Power: 40, Affinity: game.AffinityFire}, {Name: "Growl", Power: 0, Affinity: game.AffinityNormal}}},
		{Name: "Leafox", Affinity: game.AffinityPlant, Attack: 49, Defense: 49, HitPoints: 45, Starter: true,
			Moves: []game.MoveTemplate{{Name: "Vine Whip", Power: 40, Affinity: game.AffinityPlant}}},
		{Name: "Glowfly", Affinity: game.AffinityNormal, Attack: 42, Defense: 38, HitPoints: 40,
			Moves: []game.MoveTemplate{{Name: "Flash", Power: 30, Affinity: game.AffinityNormal}}},
	})
	if err != nil {
		panic(err)
	}
	return c
}
