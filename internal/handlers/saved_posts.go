package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

// GetSavedPosts returns the viewer's bookmarked posts, newest bookmark
// first, with each post and its author profile attached.
func (h *Handlers) GetSavedPosts(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var saves []models.SavedPost
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saves).Error
	if err != nil {
		respondError(c, err)
		return
	}

	if len(saves) == 0 {
		c.JSON(http.StatusOK, gin.H{"saved_posts": []gin.H{}, "meta": gin.H{"count": 0}})
		return
	}

	postIDs := make([]string, 0, len(saves))
	for _, sp := range saves {
		postIDs = append(postIDs, sp.PostID)
	}

	var posts []models.Post
	if err := database.DB.Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
		respondError(c, err)
		return
	}
	postByID := make(map[string]models.Post, len(posts))
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool)
	for _, p := range posts {
		postByID[p.ID] = p
		if !seen[p.UserID] {
			seen[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	profileByUser := make(map[string]models.Profile)
	if len(authorIDs) > 0 {
		var profiles []models.Profile
		if err := database.DB.Where("user_id IN ?", authorIDs).Find(&profiles).Error; err != nil {
			respondError(c, err)
			return
		}
		for _, p := range profiles {
			profileByUser[p.UserID] = p
		}
	}

	out := make([]gin.H, 0, len(saves))
	for _, sp := range saves {
		post, ok := postByID[sp.PostID]
		if !ok {
			// Post deleted after being saved; skip the orphan.
			continue
		}
		entry := gin.H{
			"id":       sp.ID,
			"saved_at": sp.CreatedAt,
			"post":     post,
		}
		if p, ok := profileByUser[post.UserID]; ok {
			entry["profiles"] = p
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"saved_posts": out, "meta": gin.H{"count": len(out)}})
}
