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

const jobListLimit = 50

type createJobRequest struct {
	MarketID            uint   `json:"market_id" binding:"required"`
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description" binding:"required"`
	Modality            string `json:"modality" binding:"required"`
	Location            string `json:"location"`
	EmploymentType      string `json:"employment_type" binding:"required"`
	ContactInfo         string `json:"contact_info" binding:"required"`
	PublisherName       string `json:"publisher_name" binding:"required"`
	PublisherPosition   string `json:"publisher_position"`
	PublisherCompany    string `json:"publisher_company"`
	AuthorizedToPublish bool   `json:"authorized_to_publish"`
}

// CreateJob publishes a job posting into a market. The publisher must
// declare they are authorized to publish on behalf of the hiring party.
func (h *Handlers) CreateJob(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	if !req.AuthorizedToPublish {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization_required"})
		return
	}
	if !models.ValidModality(req.Modality) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_modality"})
		return
	}
	if !models.ValidEmploymentType(req.EmploymentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_employment_type"})
		return
	}
	if req.Modality != models.JobModalityRemote && strings.TrimSpace(req.Location) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_required"})
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

	job := models.Job{
		UserID:              userID,
		MarketID:            req.MarketID,
		Title:               strings.TrimSpace(req.Title),
		Description:         strings.TrimSpace(req.Description),
		Modality:            req.Modality,
		Location:            strings.TrimSpace(req.Location),
		EmploymentType:      req.EmploymentType,
		ContactInfo:         strings.TrimSpace(req.ContactInfo),
		PublisherName:       strings.TrimSpace(req.PublisherName),
		PublisherPosition:   strings.TrimSpace(req.PublisherPosition),
		PublisherCompany:    strings.TrimSpace(req.PublisherCompany),
		AuthorizedToPublish: req.AuthorizedToPublish,
	}
	if err := database.DB.Create(&job).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// ListJobs returns the newest postings, optionally restricted to a
// market-id set via the market_ids query parameter. Publisher profiles and
// market names are batch loaded by id set.
func (h *Handlers) ListJobs(c *gin.Context) {
	if _, ok := util.GetUserIDFromContext(c); !ok {
		return
	}

	query := database.DB.Order("created_at DESC").Limit(jobListLimit)
	marketIDs := util.ParseMarketIDs(c.Query("market_ids"))
	if len(marketIDs) > 0 {
		query = query.Where("market_id IN ?", marketIDs)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		respondError(c, err)
		return
	}

	publisherIDs := make([]string, 0, len(jobs))
	seenPublishers := make(map[string]bool)
	marketIDSet := make([]uint, 0, len(jobs))
	seenMarkets := make(map[uint]bool)
	for _, j := range jobs {
		if !seenPublishers[j.UserID] {
			seenPublishers[j.UserID] = true
			publisherIDs = append(publisherIDs, j.UserID)
		}
		if !seenMarkets[j.MarketID] {
			seenMarkets[j.MarketID] = true
			marketIDSet = append(marketIDSet, j.MarketID)
		}
	}

	profileByUser := make(map[string]*models.Profile)
	if len(publisherIDs) > 0 {
		var profiles []models.Profile
		if err := database.DB.Where("user_id IN ?", publisherIDs).Find(&profiles).Error; err != nil {
			respondError(c, err)
			return
		}
		for i := range profiles {
			profileByUser[profiles[i].UserID] = &profiles[i]
		}
	}

	marketNameByID := make(map[uint]string)
	if len(marketIDSet) > 0 {
		var markets []models.Market
		if err := database.DB.Where("id IN ?", marketIDSet).Find(&markets).Error; err != nil {
			respondError(c, err)
			return
		}
		for _, m := range markets {
			marketNameByID[m.ID] = m.Name
		}
	}

	for i := range jobs {
		jobs[i].PublisherProfile = profileByUser[jobs[i].UserID]
		jobs[i].MarketName = marketNameByID[jobs[i].MarketID]
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "meta": gin.H{"count": len(jobs)}})
}
