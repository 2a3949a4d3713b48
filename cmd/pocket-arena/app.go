package main

import (
	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{
			constants.LogFieldPath: path,
			"hint":                 "create an arena_config.json with a 'species_list' array (name,affinity,attack,defense,hit_points,ability,moves[{name,power,affinity}],starter) and optional keys: effectiveness, server.address, database, world",
		})
	}
	return cfg
}

func createRepositoryOrExit(db config.DatabaseConfig) storage.Repository {
	gdb, err := storage.OpenAndMigrate(db.Driver, db.DSN)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDriver: db.Driver})
	}
	return storage.NewGormRepository(gdb)
}
