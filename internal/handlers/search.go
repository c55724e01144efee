package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

const searchLimit = 50

// SearchProfiles finds professionals by name or username, optionally
// filtered by country and by market membership. The viewer never appears in
// their own results.
func (h *Handlers) SearchProfiles(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	query := database.DB.Model(&models.Profile{}).
		Where("user_id <> ?", userID).
		Limit(searchLimit)

	if term := c.Query("q"); term != "" {
		// LOWER + LIKE instead of ILIKE so the predicate behaves the
		// same on Postgres and on the SQLite test database.
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}
	if marketIDs := util.ParseMarketIDs(c.Query("market_ids")); len(marketIDs) > 0 {
		query = query.Where("user_id IN (?)",
			database.DB.Model(&models.UserMarket{}).
				Select("user_id").
				Where("market_id IN ?", marketIDs))
	}

	var profiles []models.Profile
	if err := query.Order("full_name ASC").Find(&profiles).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "meta": gin.H{"count": len(profiles)}})
}
