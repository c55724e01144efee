// Package notifications manages the per-user inbox and the unread badge
// count. The badge count is cached in Redis and invalidated on every write
// path that can change it.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/conectapro/backend/internal/cache"
	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/metrics"
	"github.com/conectapro/backend/internal/models"
)

const (
	listLimit      = 50
	unreadCountTTL = time.Minute
)

// Service manages a user's notification inbox.
type Service struct {
	db *gorm.DB
}

// NewService creates a notifications service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create inserts a notification and invalidates the recipient's badge cache.
func (s *Service) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}
	metrics.Get().NotificationsEmitted.WithLabelValues(n.Type).Inc()
	InvalidateUnreadCount(ctx, n.UserID)
	return nil
}

// List returns the newest notifications for the user, with the acting
// user's profile attached where one exists. The related profiles are batch
// loaded by id set, same shape as the feed's dependent reads.
func (s *Service) List(ctx context.Context, userID string) ([]models.Notification, error) {
	var items []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	relatedIDs := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, n := range items {
		if n.RelatedUserID != nil && !seen[*n.RelatedUserID] {
			seen[*n.RelatedUserID] = true
			relatedIDs = append(relatedIDs, *n.RelatedUserID)
		}
	}

	if len(relatedIDs) > 0 {
		var profiles []models.Profile
		if err := s.db.WithContext(ctx).Where("user_id IN ?", relatedIDs).Find(&profiles).Error; err != nil {
			return nil, err
		}
		profileByUser := make(map[string]*models.Profile, len(profiles))
		for i := range profiles {
			profileByUser[profiles[i].UserID] = &profiles[i]
		}
		for i := range items {
			if items[i].RelatedUserID != nil {
				items[i].RelatedUserProfile = profileByUser[*items[i].RelatedUserID]
			}
		}
	}

	return items, nil
}

// UnreadCount returns how many unread notifications the user has. The count
// is served from Redis when fresh; a miss falls through to the database and
// repopulates the cache.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)

	if redis := cache.Get(); redis != nil {
		if val, found, err := redis.GetString(ctx, key); err == nil && found {
			if count, err := strconv.ParseInt(val, 10, 64); err == nil {
				metrics.Get().CacheHitsTotal.WithLabelValues("unread_count").Inc()
				return count, nil
			}
		}
		metrics.Get().CacheMissesTotal.WithLabelValues("unread_count").Inc()
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if redis := cache.Get(); redis != nil {
		if err := redis.SetEx(ctx, key, strconv.FormatInt(count, 10), unreadCountTTL); err != nil {
			logger.WarnWithFields("failed to cache unread count",
				logger.WithUserID(userID),
				logger.WithError(err),
			)
		}
	}

	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFound(apierrors.CodeNotificationNotFound, "notification not found")
	}
	InvalidateUnreadCount(ctx, userID)
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return err
	}
	InvalidateUnreadCount(ctx, userID)
	return nil
}

// Delete removes one of the user's notifications.
func (s *Service) Delete(ctx context.Context, notificationID, userID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFound(apierrors.CodeNotificationNotFound, "notification not found")
	}
	InvalidateUnreadCount(ctx, userID)
	return nil
}

// InvalidateUnreadCount drops the cached badge count for a user. Safe to
// call when Redis is not configured.
func InvalidateUnreadCount(ctx context.Context, userID string) {
	redis := cache.Get()
	if redis == nil {
		return
	}
	if err := redis.Del(ctx, unreadCountKey(userID)); err != nil && !errors.Is(err, context.Canceled) {
		logger.WarnWithFields("failed to invalidate unread count cache",
			logger.WithUserID(userID),
			logger.WithError(err),
		)
	}
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
