package main

import (
	"github.com/ericogr/pocket-arena/internal/api"
	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/version"
)

func main() {
	// Config path comes from ARENA_CONFIG or defaults to
	// ./arena_config.json in the current working directory.
	cfg := loadConfigOrExit(config.Path())
	repo := createRepositoryOrExit(cfg.Database)

	handler := api.NewArenaHandler(repo, cfg.Catalog, cfg.Effectiveness)
	router := api.NewRouter(handler)

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr:    cfg.ServerAddress,
		constants.LogFieldVersion: version.String(),
		constants.LogFieldCount:   cfg.Catalog.Len(),
	})
	if err := runServer(cfg.ServerAddress, router); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
