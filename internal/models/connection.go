package models

import (
	"time"

	"gorm.io/gorm"
)

// Connection statuses.
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusRejected = "rejected"
)

// Connection links the requester (follower) to the target (following).
// Acceptance flips status; the row direction never changes.
type Connection struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID  string `gorm:"uniqueIndex:idx_connection_pair;not null" json:"follower_id"`
	FollowingID string `gorm:"uniqueIndex:idx_connection_pair;not null" json:"following_id"`
	Status      string `gorm:"default:pending;index" json:"status"`

	FollowerProfile  *Profile `gorm:"-" json:"follower_profile,omitempty"`
	FollowingProfile *Profile `gorm:"-" json:"following_profile,omitempty"`

	// CounterpartProfile is the other party's profile relative to the viewer.
	// Only populated on accepted-connection listings.
	CounterpartProfile *Profile `gorm:"-" json:"counterpart_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = generateUUID()
	}
	return nil
}

// Involves reports whether the given user is on either end of the connection.
func (c *Connection) Involves(userID string) bool {
	return c.FollowerID == userID || c.FollowingID == userID
}

// CounterpartID returns the other end of the connection relative to userID.
func (c *Connection) CounterpartID(userID string) string {
	if c.FollowerID == userID {
		return c.FollowingID
	}
	return c.FollowerID
}
