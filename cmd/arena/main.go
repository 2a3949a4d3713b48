// Command arena is the single-player console game: explore the map, battle
// wild combatants and keep your roster between sessions.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/console"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
)

func main() {
	// Keep the screen for the game unless a level was asked for.
	if os.Getenv(constants.EnvLogLevel) == "" {
		logging.SetOutput(os.Stderr, slog.LevelWarn)
	}

	path := config.Path()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{constants.LogFieldPath: path})
	}
	db, err := storage.OpenAndMigrate(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDriver: cfg.Database.Driver})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := console.NewApp(storage.NewGormRepository(db), cfg, dice.NewTimeSeeded(), os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal("console session failed", err, nil)
	}
}
