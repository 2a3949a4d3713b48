package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pocket-arena/internal/constants"
)

// NewRouter wires every route under /api plus the health probe.
func NewRouter(h *ArenaHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.Use(noCache())
	{
		apiRoutes.GET(constants.RouteSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteEffectiveness, h.ListEffectiveness)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.GET(constants.RouteTrainers, h.ListTrainers)
		apiRoutes.POST(constants.RouteTrainers, h.CreateTrainer)
		apiRoutes.GET(constants.RouteTrainerByName, h.GetTrainer)
		apiRoutes.DELETE(constants.RouteTrainerByName, h.DeleteTrainer)
		apiRoutes.POST(constants.RouteTrainerRoster, h.AddToRoster)
		apiRoutes.POST(constants.RouteTrainerActive, h.SwitchActive)
		apiRoutes.POST(constants.RouteTrainerRest, h.RestRoster)
		apiRoutes.GET(constants.RouteTrainerHistory, h.GetHistory)
		apiRoutes.POST(constants.RouteTrainerBattles, h.RunBattle)
		apiRoutes.GET(constants.RouteTrainerLiveDuel, h.LiveBattle)
	}
	return router
}

// noCache marks API responses as uncacheable; rosters change after every
// battle.
func noCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
		c.Next()
	}
}
