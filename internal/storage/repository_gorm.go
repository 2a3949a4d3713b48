package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ericogr/pocket-arena/internal/game"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository works for both SQLite and PostgreSQL handles.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func bySlot(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }

func (r *gormRepository) withRoster() *gorm.DB {
	return r.db.Preload("Roster", bySlot).Preload("Roster.Moves", bySlot)
}

func (r *gormRepository) CreateTrainer(t *game.Trainer) error {
	var n int64
	if err := r.db.Model(&game.Trainer{}).Where("name = ?", t.Name).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrTrainerExists, t.Name)
	}
	return r.db.Create(t).Error
}

func (r *gormRepository) GetTrainerByName(name string) (*game.Trainer, error) {
	var t game.Trainer
	err := r.withRoster().Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) ListTrainers() ([]game.Trainer, error) {
	var out []game.Trainer
	if err := r.withRoster().Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) SaveCheckpoint(t *game.Trainer) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(t).Error
}

func (r *gormRepository) RecordBattle(t *game.Trainer, rec *game.BattleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(t).Error; err != nil {
			return err
		}
		rec.TrainerID = t.ID
		return tx.Create(rec).Error
	})
}

func (r *gormRepository) GetHistory(trainerID uint, limit int) ([]game.BattleRecord, error) {
	q := r.db.Where("trainer_id = ?", trainerID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []game.BattleRecord
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetLeaderboard returns top N trainers ordered by victories desc, then
// battles desc.
func (r *gormRepository) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []LeaderboardEntry
	err := r.db.Model(&game.BattleRecord{}).
		Select("trainers.name AS name, COUNT(battle_records.id) AS battles, "+
			"SUM(CASE WHEN battle_records.outcome = ? THEN 1 ELSE 0 END) AS victories, "+
			"SUM(CASE WHEN battle_records.outcome = ? THEN 1 ELSE 0 END) AS defeats, "+
			"SUM(CASE WHEN battle_records.outcome = ? THEN 1 ELSE 0 END) AS fled",
			game.OutcomeVictory, game.OutcomeDefeat, game.OutcomeFled).
		Joins("JOIN trainers ON trainers.id = battle_records.trainer_id AND trainers.deleted_at IS NULL").
		Group("trainers.name").
		Order("victories DESC").
		Order("battles DESC").
		Order("name ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) DeleteTrainer(name string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var t game.Trainer
		if err := tx.Where("name = ?", name).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainerNotFound
			}
			return err
		}
		var memberIDs []uint
		if err := tx.Unscoped().Model(&game.Combatant{}).Where("trainer_id = ?", t.ID).Pluck("id", &memberIDs).Error; err != nil {
			return err
		}
		if len(memberIDs) > 0 {
			if err := tx.Unscoped().Where("combatant_id IN ?", memberIDs).Delete(&game.Move{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("trainer_id = ?", t.ID).Delete(&game.Combatant{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("trainer_id = ?", t.ID).Delete(&game.BattleRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&t).Error
	})
}
