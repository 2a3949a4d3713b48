package api

import (
	"time"

	"github.com/ericogr/pocket-arena/internal/dice"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/ericogr/pocket-arena/internal/storage"
)

// DefaultLiveIdle is how long a live battle waits for the client's next
// command before the session is dropped.
const DefaultLiveIdle = 2 * time.Minute

// ArenaHandler groups all arena HTTP handlers.
type ArenaHandler struct {
	repo     storage.Repository
	catalog  *game.Catalog
	table    *game.EffectivenessTable
	sessions *service.Sessions
	newDice  func() dice.Dice
	liveIdle time.Duration
}

// NewArenaHandler creates a handler over the repository and the loaded
// catalog and effectiveness table.
func NewArenaHandler(repo storage.Repository, catalog *game.Catalog, table *game.EffectivenessTable) *ArenaHandler {
	return &ArenaHandler{
		repo:     repo,
		catalog:  catalog,
		table:    table,
		sessions: service.NewSessions(),
		newDice:  dice.NewTimeSeeded,
		liveIdle: DefaultLiveIdle,
	}
}

// WithDice replaces the per-battle randomness source.
func (h *ArenaHandler) WithDice(f func() dice.Dice) *ArenaHandler {
	h.newDice = f
	return h
}

// WithLiveIdle changes the live battle inactivity timeout.
func (h *ArenaHandler) WithLiveIdle(d time.Duration) *ArenaHandler {
	h.liveIdle = d
	return h
}
