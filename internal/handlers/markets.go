package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

// ListMarkets returns all markets ordered by name.
func (h *Handlers) ListMarkets(c *gin.Context) {
	var markets []models.Market
	if err := database.DB.Order("name ASC").Find(&markets).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"markets": markets})
}

// ListProfessions returns the professions of one market, ordered by name.
func (h *Handlers) ListProfessions(c *gin.Context) {
	marketID := util.ParseInt(c.Param("id"), 0)
	if marketID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_market_id"})
		return
	}

	var professions []models.Profession
	err := database.DB.
		Where("market_id = ?", marketID).
		Order("name ASC").
		Find(&professions).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"professions": professions})
}
