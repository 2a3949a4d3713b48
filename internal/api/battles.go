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
)

// battleRequest scripts a whole battle. An empty opponent is picked at
// random from the catalog.
type battleRequest struct {
	Opponent     string           `json:"opponent"`
	Commands     []engine.Command `json:"commands" binding:"required"`
	Replacements []int            `json:"replacements"`
}

type battleResponse struct {
	Result  engine.Result      `json:"result"`
	Record  *game.BattleRecord `json:"record,omitempty"`
	Trainer *game.Trainer      `json:"trainer,omitempty"`
}

// RunBattle plays a scripted battle against a wild opponent and persists
// the outcome. When the script runs out first nothing is saved and the
// partial event log is returned with the error.
func (h *ArenaHandler) RunBattle(c *gin.Context) {
	var req battleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := c.Param("name")
	release, err := h.sessions.Acquire(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}
	defer release()

	t, err := h.repo.GetTrainerByName(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}
	d := h.newDice()
	opponent, err := service.SpawnWild(h.catalog, d, req.Opponent)
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}

	input := &engine.ScriptedInput{Commands: req.Commands, Replacements: req.Replacements}
	res, rec, err := service.RunEncounter(c.Request.Context(), h.repo, service.Encounter{
		Trainer:  t,
		Opponent: opponent,
		Table:    h.table,
		Dice:     d,
		Input:    input,
	})
	if errors.Is(err, engine.ErrScriptExhausted) {
		logging.Warn("battle script exhausted", logging.Fields{constants.LogFieldTrainer: name, constants.LogFieldCount: input.Consumed()})
		out, _ := MarshalIntoSnakeKeys(battleResponse{Result: res})
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleScriptExhausted, "partial": out})
		return
	}
	if err != nil {
		respondError(c, err, constants.ErrFailedRunBattle)
		return
	}
	writeModel(c, http.StatusOK, battleResponse{Result: res, Record: rec, Trainer: t})
}
