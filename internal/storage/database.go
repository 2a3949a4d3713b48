package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
)

// OpenAndMigrate opens the database for driver ("sqlite" or "postgres") and
// keeps the schema updated via AutoMigrate.
func OpenAndMigrate(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres requires a DSN")
		}
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		if dsn == "" {
			dsn = constants.DefaultDBPath
		}
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Trainer{}, &game.Combatant{}, &game.Move{}, &game.BattleRecord{}); err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{constants.LogFieldDriver: driverName(driver)})
	return db, nil
}

func driverName(d string) string {
	if d == "" {
		return "sqlite"
	}
	return d
}

// ensureParentDir creates the directory holding a SQLite file.
func ensureParentDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}
