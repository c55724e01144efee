package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/util"
)

// GetFeed returns the reconciled feed page for the viewer's selected
// markets, passed as a comma-separated market_ids query parameter. No
// selection means an empty feed, not an unfiltered one.
func (h *Handlers) GetFeed(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	marketIDs := util.ParseMarketIDs(c.Query("market_ids"))

	items, err := h.feed.Fetch(c.Request.Context(), userID, marketIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": items,
		"meta": gin.H{
			"count":      len(items),
			"market_ids": marketIDs,
		},
	})
}
