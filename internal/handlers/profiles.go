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

// GetMyProfile returns the viewer's profile with their market and
// profession selections. A missing profile is a 404 the client treats as
// "complete your profile first".
func (h *Handlers) GetMyProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	h.respondProfile(c, userID)
}

// GetProfile returns another user's public profile.
func (h *Handlers) GetProfile(c *gin.Context) {
	if _, ok := util.GetUserIDFromContext(c); !ok {
		return
	}
	h.respondProfile(c, c.Param("user_id"))
}

func (h *Handlers) respondProfile(c *gin.Context, userID string) {
	var profile models.Profile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	var userMarkets []models.UserMarket
	if err := database.DB.Preload("Market").Where("user_id = ?", userID).Find(&userMarkets).Error; err != nil {
		respondError(c, err)
		return
	}
	var userProfessions []models.UserProfession
	if err := database.DB.Preload("Profession").Where("user_id = ?", userID).Find(&userProfessions).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     profile,
		"markets":     userMarkets,
		"professions": userProfessions,
	})
}

type upsertProfileRequest struct {
	Username  string `json:"username" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Country   string `json:"country"`
	AboutMe   string `json:"about_me"`
	AvatarURL string `json:"avatar_url"`
}

// UpsertMyProfile creates the viewer's profile or updates it in place.
func (h *Handlers) UpsertMyProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.FullName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed"})
		return
	}

	var profile models.Profile
	err := database.DB.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.Profile{
			UserID:    userID,
			Username:  req.Username,
			FullName:  req.FullName,
			Country:   req.Country,
			AboutMe:   req.AboutMe,
			AvatarURL: req.AvatarURL,
		}
		if err := database.DB.Create(&profile).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"profile": profile})

	case err == nil:
		profile.Username = req.Username
		profile.FullName = req.FullName
		profile.Country = req.Country
		profile.AboutMe = req.AboutMe
		profile.AvatarURL = req.AvatarURL
		if err := database.DB.Save(&profile).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})

	default:
		respondError(c, err)
	}
}

type setMarketsRequest struct {
	MarketIDs []uint `json:"market_ids"`
}

// SetMarkets replaces the viewer's market subscriptions. Professions tied to
// markets that were dropped are removed with them.
func (h *Handlers) SetMarkets(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req setMarketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	if len(req.MarketIDs) > 0 {
		var count int64
		if err := database.DB.Model(&models.Market{}).Where("id IN ?", req.MarketIDs).Count(&count).Error; err != nil {
			respondError(c, err)
			return
		}
		if count != int64(len(req.MarketIDs)) {
			c.JSON(http.StatusNotFound, gin.H{"error": "market_not_found"})
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserMarket{}).Error; err != nil {
			return err
		}
		for _, marketID := range req.MarketIDs {
			if err := tx.Create(&models.UserMarket{UserID: userID, MarketID: marketID}).Error; err != nil {
				return err
			}
		}

		// Drop professions whose market is no longer selected.
		sub := tx.Model(&models.Profession{}).Select("id")
		if len(req.MarketIDs) > 0 {
			sub = sub.Where("market_id NOT IN ?", req.MarketIDs)
		}
		return tx.
			Where("user_id = ? AND profession_id IN (?)", userID, sub).
			Delete(&models.UserProfession{}).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"market_ids": req.MarketIDs})
}

type setProfessionsRequest struct {
	ProfessionIDs []uint `json:"profession_ids"`
}

// SetProfessions replaces the viewer's professions. Every profession must
// belong to a market the viewer is subscribed to.
func (h *Handlers) SetProfessions(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req setProfessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	if len(req.ProfessionIDs) > 0 {
		var count int64
		err := database.DB.Model(&models.Profession{}).
			Where("id IN ? AND market_id IN (?)",
				req.ProfessionIDs,
				database.DB.Model(&models.UserMarket{}).Select("market_id").Where("user_id = ?", userID)).
			Count(&count).Error
		if err != nil {
			respondError(c, err)
			return
		}
		if count != int64(len(req.ProfessionIDs)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "profession_outside_markets"})
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProfession{}).Error; err != nil {
			return err
		}
		for _, professionID := range req.ProfessionIDs {
			if err := tx.Create(&models.UserProfession{UserID: userID, ProfessionID: professionID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profession_ids": req.ProfessionIDs})
}
