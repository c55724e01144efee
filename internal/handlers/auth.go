package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/database"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/util"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account and returns a session token.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	resp, err := h.auth.Register(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a session token.
func (h *Handlers) Login(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	resp, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user and their profile when one exists.
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	response := gin.H{"user": user}

	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		response["profile"] = profile
	}

	c.JSON(http.StatusOK, response)
}
