package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationTypeLike               = "like"
	NotificationTypeComment            = "comment"
	NotificationTypeConnectionRequest  = "connection_request"
	NotificationTypeConnectionAccepted = "connection_accepted"
	NotificationTypeNewPost            = "new_post"
)

// Notification is an inbox entry for a user. Related* fields point at the
// actor and subject so the client can render avatars and deep links.
type Notification struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"index;not null" json:"user_id"`
	Type    string `gorm:"not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Read    bool   `gorm:"default:false;index" json:"read"`

	RelatedUserID       *string `json:"related_user_id,omitempty"`
	RelatedPostID       *string `json:"related_post_id,omitempty"`
	RelatedConnectionID *string `json:"related_connection_id,omitempty"`

	RelatedUserProfile *Profile `gorm:"-" json:"related_user_profile,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = generateUUID()
	}
	return nil
}
