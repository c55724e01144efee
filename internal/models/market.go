package models

import (
	"time"

	"gorm.io/gorm"
)

// Market is a professional sector users subscribe to. The feed and the jobs
// board are both scoped by market membership.
type Market struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Profession belongs to exactly one market.
type Profession struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MarketID uint   `gorm:"index;not null" json:"market_id"`
	Name     string `gorm:"not null" json:"name"`

	Market *Market `gorm:"foreignKey:MarketID" json:"market,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// UserMarket subscribes a user to a market. One row per (user, market).
type UserMarket struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"uniqueIndex:idx_user_market;not null" json:"user_id"`
	MarketID uint   `gorm:"uniqueIndex:idx_user_market;not null" json:"market_id"`

	Market *Market `gorm:"foreignKey:MarketID" json:"market,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (um *UserMarket) BeforeCreate(tx *gorm.DB) error {
	if um.ID == "" {
		um.ID = generateUUID()
	}
	return nil
}

func (UserMarket) TableName() string {
	return "user_markets"
}

// UserProfession records a profession a user exercises. Professions are only
// selectable within the user's subscribed markets; dropping a market drops
// its professions.
type UserProfession struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string `gorm:"uniqueIndex:idx_user_profession;not null" json:"user_id"`
	ProfessionID uint   `gorm:"uniqueIndex:idx_user_profession;not null" json:"profession_id"`

	Profession *Profession `gorm:"foreignKey:ProfessionID" json:"profession,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (up *UserProfession) BeforeCreate(tx *gorm.DB) error {
	if up.ID == "" {
		up.ID = generateUUID()
	}
	return nil
}

func (UserProfession) TableName() string {
	return "user_professions"
}
