package models

import (
	"time"

	"gorm.io/gorm"
)

// Job modality values.
const (
	JobModalityRemote = "remote"
	JobModalityHybrid = "hybrid"
	JobModalityOnSite = "on-site"
)

// Job employment types.
const (
	JobTypeFullTime     = "full-time"
	JobTypeFreelance    = "freelance"
	JobTypeInternship   = "internship"
	JobTypeProjectBased = "project-based"
)

// Job is a market-scoped job posting. Publisher fields are denormalized so a
// posting survives profile edits.
type Job struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"index;not null" json:"user_id"`
	MarketID    uint   `gorm:"index;not null" json:"market_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Modality    string `gorm:"not null" json:"modality"`
	Location    string `json:"location,omitempty"`

	EmploymentType string `gorm:"not null" json:"employment_type"`
	ContactInfo    string `gorm:"not null" json:"contact_info"`

	PublisherName       string `gorm:"not null" json:"publisher_name"`
	PublisherPosition   string `json:"publisher_position,omitempty"`
	PublisherCompany    string `json:"publisher_company,omitempty"`
	AuthorizedToPublish bool   `gorm:"not null" json:"authorized_to_publish"`

	PublisherProfile *Profile `gorm:"-" json:"publisher_profile,omitempty"`
	MarketName       string   `gorm:"-" json:"market_name,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = generateUUID()
	}
	return nil
}

// ValidModality reports whether m is an accepted work modality.
func ValidModality(m string) bool {
	switch m {
	case JobModalityRemote, JobModalityHybrid, JobModalityOnSite:
		return true
	}
	return false
}

// ValidEmploymentType reports whether t is an accepted employment type.
func ValidEmploymentType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypeFreelance, JobTypeInternship, JobTypeProjectBased:
		return true
	}
	return false
}
