package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/engine"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/service"
	"github.com/ericogr/pocket-arena/internal/storage"
)

// statusFor maps domain errors to an HTTP status and a client message. A
// zero message means the error is internal.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrTrainerNotFound):
		return http.StatusNotFound, constants.ErrTrainerNotFound
	case errors.Is(err, storage.ErrTrainerExists):
		return http.StatusConflict, constants.ErrTrainerExists
	case errors.Is(err, service.ErrInvalidTrainerName):
		return http.StatusBadRequest, constants.ErrInvalidTrainerName
	case errors.Is(err, game.ErrUnknownSpecies):
		return http.StatusBadRequest, constants.ErrUnknownSpecies
	case errors.Is(err, service.ErrNotAStarter):
		return http.StatusBadRequest, constants.ErrNotAStarter
	case errors.Is(err, game.ErrRosterFull):
		return http.StatusConflict, constants.ErrRosterFull
	case errors.Is(err, game.ErrInvalidSlot):
		return http.StatusBadRequest, constants.ErrInvalidSlot
	case errors.Is(err, game.ErrCombatantFainted):
		return http.StatusConflict, constants.ErrCombatantFainted
	case errors.Is(err, service.ErrNoValidRoster):
		return http.StatusConflict, constants.ErrNoValidRoster
	case errors.Is(err, service.ErrBattleInProgress):
		return http.StatusConflict, constants.ErrBattleInProgress
	case errors.Is(err, engine.ErrScriptExhausted):
		return http.StatusBadRequest, constants.ErrBattleScriptExhausted
	}
	return http.StatusInternalServerError, ""
}

// respondError writes {"error": ...}; internal errors are logged and
// replaced by fallback.
func respondError(c *gin.Context, err error, fallback string) {
	code, msg := statusFor(err)
	if msg == "" {
		logging.Error(fallback, err, logging.Fields{constants.LogFieldPath: c.FullPath()})
		msg = fallback
	}
	c.JSON(code, gin.H{constants.JSONKeyError: msg})
}
