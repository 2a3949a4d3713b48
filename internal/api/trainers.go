package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type createTrainerRequest struct {
	Name    string `json:"name" binding:"required"`
	Starter string `json:"starter" binding:"required"`
}

type addToRosterRequest struct {
	Species string `json:"species" binding:"required"`
}

type switchActiveRequest struct {
	Slot *int `json:"slot" binding:"required"`
}

// parseLimit reads ?limit= and clamps it to 1..100.
func parseLimit(c *gin.Context, def int) int {
	limit := def
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

// ListTrainers returns every registered trainer with its roster.
func (h *ArenaHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.repo.ListTrainers()
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchTrainers)
		return
	}
	writeModel(c, http.StatusOK, trainers)
}

// CreateTrainer registers a trainer with one starter.
func (h *ArenaHandler) CreateTrainer(c *gin.Context) {
	var req createTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	t, err := service.CreateTrainer(h.repo, h.catalog, req.Name, req.Starter)
	if err != nil {
		respondError(c, err, constants.ErrFailedSaveTrainer)
		return
	}
	writeModel(c, http.StatusCreated, t)
}

// GetTrainer returns one trainer. Concurrent reads of the same name are
// collapsed into a single query.
func (h *ArenaHandler) GetTrainer(c *gin.Context) {
	t, err := service.LoadTrainerShared(c.Request.Context(), h.repo, c.Param("name"))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchTrainers)
		return
	}
	writeModel(c, http.StatusOK, t)
}

// DeleteTrainer removes a trainer unless it is in a battle.
func (h *ArenaHandler) DeleteTrainer(c *gin.Context) {
	name := c.Param("name")
	release, err := h.sessions.Acquire(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedSaveTrainer)
		return
	}
	defer release()
	if err := service.DeleteTrainer(h.repo, name); err != nil {
		respondError(c, err, constants.ErrFailedSaveTrainer)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddToRoster spawns a species into the trainer's roster.
func (h *ArenaHandler) AddToRoster(c *gin.Context) {
	var req addToRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.mutateTrainer(c, func(name string) (interface{}, error) {
		return service.AddToRoster(h.repo, h.catalog, name, req.Species)
	})
}

// SwitchActive selects the roster member that leads the next battle.
func (h *ArenaHandler) SwitchActive(c *gin.Context) {
	var req switchActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.mutateTrainer(c, func(name string) (interface{}, error) {
		return service.SwitchActive(h.repo, name, *req.Slot)
	})
}

// RestRoster heals the whole roster.
func (h *ArenaHandler) RestRoster(c *gin.Context) {
	h.mutateTrainer(c, func(name string) (interface{}, error) {
		return service.RestRoster(h.repo, name)
	})
}

// mutateTrainer runs fn while holding the trainer's session so roster edits
// never interleave with a running battle.
func (h *ArenaHandler) mutateTrainer(c *gin.Context, fn func(name string) (interface{}, error)) {
	name := c.Param("name")
	release, err := h.sessions.Acquire(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedSaveTrainer)
		return
	}
	defer release()
	t, err := fn(name)
	if err != nil {
		respondError(c, err, constants.ErrFailedSaveTrainer)
		return
	}
	writeModel(c, http.StatusOK, t)
}

// GetHistory lists the trainer's battles, newest first.
func (h *ArenaHandler) GetHistory(c *gin.Context) {
	t, err := service.LoadTrainerShared(c.Request.Context(), h.repo, c.Param("name"))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	records, err := h.repo.GetHistory(t.ID, parseLimit(c, defaultListLimit))
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchHistory)
		return
	}
	writeModel(c, http.StatusOK, records)
}
