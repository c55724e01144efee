package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

type createPostRequest struct {
	Content  string `json:"content" binding:"required"`
	MarketID uint   `json:"market_id" binding:"required"`
	ImageURL string `json:"image_url"`
}

// CreatePost publishes a post into one of the author's markets.
func (h *Handlers) CreatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_required"})
		return
	}

	var market models.Market
	if err := database.DB.First(&market, "id = ?", req.MarketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "market_not_found"})
			return
		}
		respondError(c, err)
		return
	}

	post := models.Post{
		UserID:   userID,
		MarketID: req.MarketID,
		Content:  content,
		ImageURL: req.ImageURL,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// DeletePost removes one of the author's own posts and its engagement rows.
func (h *Handlers) DeletePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var post models.Post
	err := database.DB.Where("id = ? AND user_id = ?", postID, userID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.PostLike{}, &models.PostComment{}, &models.SavedPost{}} {
			if err := tx.Where("post_id = ?", postID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleLike flips the viewer's like on a post and reports the new state.
// The client refetches the feed afterwards rather than patching local state.
func (h *Handlers) ToggleLike(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	liked, err := h.feed.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_liked": liked})
}

// ToggleSave flips the viewer's bookmark on a post and reports the new state.
func (h *Handlers) ToggleSave(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	saved, err := h.feed.ToggleSave(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_saved": saved})
}
