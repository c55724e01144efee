// Package connections implements the professional network graph: directed
// connection requests that get accepted, rejected or withdrawn.
package connections

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/models"
	"github.com/conectapro/backend/internal/notifications"
)

// Service manages connection requests between users.
type Service struct {
	db       *gorm.DB
	notifier *notifications.Service
}

// NewService creates a connections service.
func NewService(db *gorm.DB, notifier *notifications.Service) *Service {
	return &Service{db: db, notifier: notifier}
}

// Request creates a pending connection from requester to target and notifies
// the target. Requesting yourself or an existing pair is rejected.
func (s *Service) Request(ctx context.Context, requesterID, targetID string) (*models.Connection, error) {
	if requesterID == targetID {
		return nil, apierrors.Validation("cannot connect to yourself", "following_id")
	}

	var target models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", targetID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(apierrors.CodeProfileNotFound, "target profile not found")
		}
		return nil, err
	}

	var existing models.Connection
	err := s.db.WithContext(ctx).
		Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			requesterID, targetID, targetID, requesterID).
		First(&existing).Error
	if err == nil {
		return nil, apierrors.New(apierrors.CodeAlreadyConnected, "connection already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conn := models.Connection{
		FollowerID:  requesterID,
		FollowingID: targetID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&conn).Error; err != nil {
		return nil, err
	}

	s.notifyConnection(ctx, &conn, requesterID, targetID,
		models.NotificationTypeConnectionRequest,
		"Nueva solicitud de conexión",
		"%s quiere conectar contigo")

	return &conn, nil
}

// Accept marks a pending request addressed to userID as accepted and
// notifies the requester.
func (s *Service) Accept(ctx context.Context, connectionID, userID string) (*models.Connection, error) {
	conn, err := s.pendingFor(ctx, connectionID, userID)
	if err != nil {
		return nil, err
	}

	conn.Status = models.ConnectionStatusAccepted
	if err := s.db.WithContext(ctx).Save(conn).Error; err != nil {
		return nil, err
	}

	s.notifyConnection(ctx, conn, userID, conn.FollowerID,
		models.NotificationTypeConnectionAccepted,
		"Conexión aceptada",
		"%s aceptó tu solicitud de conexión")

	return conn, nil
}

// Reject marks a pending request addressed to userID as rejected. The
// requester is not notified.
func (s *Service) Reject(ctx context.Context, connectionID, userID string) (*models.Connection, error) {
	conn, err := s.pendingFor(ctx, connectionID, userID)
	if err != nil {
		return nil, err
	}

	conn.Status = models.ConnectionStatusRejected
	if err := s.db.WithContext(ctx).Save(conn).Error; err != nil {
		return nil, err
	}
	return conn, nil
}

// Cancel deletes a connection the user is part of. Requesters withdraw their
// pending requests; either side can sever an accepted connection. Connections
// the user is not part of read as not found.
func (s *Service) Cancel(ctx context.Context, connectionID, userID string) error {
	var conn models.Connection
	err := s.db.WithContext(ctx).Where("id = ?", connectionID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NotFound(apierrors.CodeConnectionNotFound, "connection not found")
	}
	if err != nil {
		return err
	}
	if !conn.Involves(userID) {
		return apierrors.NotFound(apierrors.CodeConnectionNotFound, "connection not found")
	}
	return s.db.WithContext(ctx).Delete(&conn).Error
}

// PendingIncoming lists pending requests addressed to the user, with the
// requester's profile attached.
func (s *Service) PendingIncoming(ctx context.Context, userID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.db.WithContext(ctx).
		Where("following_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, conns)
}

// PendingSent lists pending requests the user has made, with the target's
// profile attached.
func (s *Service) PendingSent(ctx context.Context, userID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, conns)
}

// Accepted lists the user's accepted connections, either direction.
func (s *Service) Accepted(ctx context.Context, userID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.db.WithContext(ctx).
		Where("(follower_id = ? OR following_id = ?) AND status = ?",
			userID, userID, models.ConnectionStatusAccepted).
		Order("updated_at DESC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	conns, err = s.attachProfiles(ctx, conns)
	if err != nil {
		return nil, err
	}
	for i := range conns {
		c := &conns[i]
		if c.CounterpartID(userID) == c.FollowingID {
			c.CounterpartProfile = c.FollowingProfile
		} else {
			c.CounterpartProfile = c.FollowerProfile
		}
	}
	return conns, nil
}

func (s *Service) pendingFor(ctx context.Context, connectionID, userID string) (*models.Connection, error) {
	var conn models.Connection
	err := s.db.WithContext(ctx).
		Where("id = ? AND following_id = ? AND status = ?",
			connectionID, userID, models.ConnectionStatusPending).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound(apierrors.CodeConnectionNotFound, "pending connection not found")
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// attachProfiles batch loads both endpoint profiles for each connection.
func (s *Service) attachProfiles(ctx context.Context, conns []models.Connection) ([]models.Connection, error) {
	if len(conns) == 0 {
		return conns, nil
	}

	userIDs := make([]string, 0, len(conns)*2)
	seen := make(map[string]bool)
	for _, c := range conns {
		for _, id := range []string{c.FollowerID, c.FollowingID} {
			if !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	profileByUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		profileByUser[profiles[i].UserID] = &profiles[i]
	}

	for i := range conns {
		conns[i].FollowerProfile = profileByUser[conns[i].FollowerID]
		conns[i].FollowingProfile = profileByUser[conns[i].FollowingID]
	}
	return conns, nil
}

// notifyConnection emits a connection lifecycle notification. Failures are
// swallowed; the state change already committed.
func (s *Service) notifyConnection(ctx context.Context, conn *models.Connection, actorID, recipientID, kind, title, messageFormat string) {
	actorName := "Alguien"
	var actorProfile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", actorID).First(&actorProfile).Error; err == nil {
		actorName = actorProfile.DisplayName()
	}

	_ = s.notifier.Create(ctx, &models.Notification{
		UserID:              recipientID,
		Type:                kind,
		Title:               title,
		Message:             fmt.Sprintf(messageFormat, actorName),
		RelatedUserID:       &actorID,
		RelatedConnectionID: &conn.ID,
	})
}
