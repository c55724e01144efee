package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/metrics"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/notifications"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// ToggleLike flips the viewer's like on a post and returns the new state.
// A like appearing notifies the post author, unless the viewer is the
// author. A like disappearing notifies nobody. Deleting a like that another
// request already removed is a no-op success; inserting one that another
// request already created hits the (post_id, user_id) unique index and is
// treated as already-liked.
func (s *Service) ToggleLike(ctx context.Context, postID, viewerID string) (liked bool, err error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierrors.NotFound(apierrors.CodePostNotFound, "post not found")
		}
		return false, err
	}

	var existing models.PostLike
	err = s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		First(&existing).Error

	switch {
	case err == nil:
		// Zero rows affected means a concurrent toggle won; the end
		// state is the same either way.
		if err := s.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return true, err
		}
		metrics.Get().EngagementTogglesTotal.WithLabelValues("like", "off").Inc()
		return false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.PostLike{PostID: postID, UserID: viewerID}
		if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
			if isUniqueViolation(err) {
				return true, nil
			}
			return false, err
		}
		metrics.Get().EngagementTogglesTotal.WithLabelValues("like", "on").Inc()

		if post.UserID != viewerID {
			s.notifyLike(ctx, &post, viewerID)
		}
		return true, nil

	default:
		return false, err
	}
}

// ToggleSave flips the viewer's bookmark on a post and returns the new
// state. Saves are private; no notification is ever emitted.
func (s *Service) ToggleSave(ctx context.Context, postID, viewerID string) (saved bool, err error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apierrors.NotFound(apierrors.CodePostNotFound, "post not found")
		}
		return false, err
	}

	var existing models.SavedPost
	err = s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		First(&existing).Error

	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return true, err
		}
		metrics.Get().EngagementTogglesTotal.WithLabelValues("save", "off").Inc()
		return false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		save := models.SavedPost{PostID: postID, UserID: viewerID}
		if err := s.db.WithContext(ctx).Create(&save).Error; err != nil {
			if isUniqueViolation(err) {
				return true, nil
			}
			return false, err
		}
		metrics.Get().EngagementTogglesTotal.WithLabelValues("save", "on").Inc()
		return true, nil

	default:
		return false, err
	}
}

// notifyLike inserts the like notification for the post author. Failure is
// logged and swallowed: the like itself already committed and the toggle
// must report success.
func (s *Service) notifyLike(ctx context.Context, post *models.Post, likerID string) {
	var likerProfile models.Profile
	likerName := "Alguien"
	if err := s.db.WithContext(ctx).Where("user_id = ?", likerID).First(&likerProfile).Error; err == nil {
		likerName = likerProfile.DisplayName()
	}

	notification := models.Notification{
		UserID:        post.UserID,
		Type:          models.NotificationTypeLike,
		Title:         "Nueva reacción",
		Message:       fmt.Sprintf("A %s le gustó tu publicación", likerName),
		RelatedUserID: &likerID,
		RelatedPostID: &post.ID,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		logger.WarnWithFields("failed to create like notification",
			logger.WithPostID(post.ID),
			logger.WithUserID(likerID),
			logger.WithError(err),
		)
		return
	}
	metrics.Get().NotificationsEmitted.WithLabelValues(models.NotificationTypeLike).Inc()
	notifications.InvalidateUnreadCount(ctx, post.UserID)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
