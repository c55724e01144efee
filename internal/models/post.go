package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a market-scoped publication. Posts are immutable once created;
// engagement lives in the PostLike, PostComment and SavedPost tables and is
// joined back in at read time.
type Post struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"index;not null" json:"user_id"`
	MarketID uint   `gorm:"index;not null" json:"market_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	return nil
}

// PostLike marks that a user liked a post. The composite unique index is the
// source of truth for "at most one like per (post, user)"; concurrent toggles
// race against it rather than against application state.
type PostLike struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	PostID string `gorm:"uniqueIndex:idx_post_like;not null" json:"post_id"`
	UserID string `gorm:"uniqueIndex:idx_post_like;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (pl *PostLike) BeforeCreate(tx *gorm.DB) error {
	if pl.ID == "" {
		pl.ID = generateUUID()
	}
	return nil
}

func (PostLike) TableName() string {
	return "post_likes"
}

// PostComment is a flat comment on a post.
type PostComment struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	PostID  string `gorm:"index;not null" json:"post_id"`
	UserID  string `gorm:"index;not null" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}

func (pc *PostComment) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == "" {
		pc.ID = generateUUID()
	}
	return nil
}

func (PostComment) TableName() string {
	return "post_comments"
}

// SavedPost is a private bookmark. Same pair-uniqueness rule as PostLike,
// but saving never notifies anyone.
type SavedPost struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	PostID string `gorm:"uniqueIndex:idx_saved_post;not null" json:"post_id"`
	UserID string `gorm:"uniqueIndex:idx_saved_post;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (sp *SavedPost) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == "" {
		sp.ID = generateUUID()
	}
	return nil
}

func (SavedPost) TableName() string {
	return "saved_posts"
}
