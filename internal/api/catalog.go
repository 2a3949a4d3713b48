package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSpecies returns the loaded species catalog in configuration order.
func (h *ArenaHandler) ListSpecies(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.All())
}

// ListEffectiveness returns every configured multiplier pair.
func (h *ArenaHandler) ListEffectiveness(c *gin.Context) {
	c.JSON(http.StatusOK, h.table.Entries())
}
