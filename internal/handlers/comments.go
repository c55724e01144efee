package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment adds a comment to a post and notifies the post author,
// unless the commenter is the author.
func (h *Handlers) CreateComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_required"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post_not_found"})
			return
		}
		respondError(c, err)
		return
	}

	comment := models.PostComment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		respondError(c, err)
		return
	}

	if post.UserID != userID {
		commenterName := "Alguien"
		var profile models.Profile
		if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			commenterName = profile.DisplayName()
		}
		_ = h.notifications.Create(c.Request.Context(), &models.Notification{
			UserID:        post.UserID,
			Type:          models.NotificationTypeComment,
			Title:         "Nuevo comentario",
			Message:       fmt.Sprintf("%s comentó tu publicación", commenterName),
			RelatedUserID: &userID,
			RelatedPostID: &post.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments returns a post's comments oldest first, with author profiles
// batch loaded by user-id set.
func (h *Handlers) ListComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.PostComment
	err := database.DB.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		respondError(c, err)
		return
	}

	userIDs := make([]string, 0, len(comments))
	seen := make(map[string]bool)
	for _, cm := range comments {
		if !seen[cm.UserID] {
			seen[cm.UserID] = true
			userIDs = append(userIDs, cm.UserID)
		}
	}

	profileByUser := make(map[string]models.Profile)
	if len(userIDs) > 0 {
		var profiles []models.Profile
		if err := database.DB.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
			respondError(c, err)
			return
		}
		for _, p := range profiles {
			profileByUser[p.UserID] = p
		}
	}

	type commentWithProfile struct {
		models.PostComment
		Profile *models.Profile `json:"profiles,omitempty"`
	}
	out := make([]commentWithProfile, 0, len(comments))
	for _, cm := range comments {
		item := commentWithProfile{PostComment: cm}
		if p, ok := profileByUser[cm.UserID]; ok {
			profile := p
			item.Profile = &profile
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, gin.H{"comments": out, "meta": gin.H{"count": len(out)}})
}
