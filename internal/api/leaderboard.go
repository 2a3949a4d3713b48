package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dedupe"
	"github.com/ericogr/pocket-arena/internal/storage"
)

const defaultLeaderboardLimit = 10

// ListLeaderboard returns trainers ranked by victories. Identical concurrent
// requests share one aggregate query.
func (h *ArenaHandler) ListLeaderboard(c *gin.Context) {
	limit := parseLimit(c, defaultLeaderboardLimit)
	ch := dedupe.LeaderboardGroup.DoChan(dedupe.LeaderboardKey(limit), func() (interface{}, error) {
		return h.repo.GetLeaderboard(limit)
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			respondError(c, r.Err, constants.ErrFailedFetchLeaderboard)
			return
		}
		entries, _ := r.Val.([]storage.LeaderboardEntry)
		if entries == nil {
			entries = []storage.LeaderboardEntry{}
		}
		c.JSON(http.StatusOK, entries)
	case <-c.Request.Context().Done():
		c.JSON(http.StatusRequestTimeout, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
	}
}
