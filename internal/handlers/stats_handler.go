package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"securecare/internal/services"
)

// StatsHandler handles aggregate statistics requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetLevelStats handles retrieving the per-level aggregate view.
// @Summary     Get level statistics
// @Description Get assigned and awarded counts per certification level
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.LevelStats "Per-level statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/levels [get]
func (h *StatsHandler) GetLevelStats(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.LevelStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
