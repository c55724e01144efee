package notifications

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.InitializeForTests()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}, &models.Profile{}))
	return db
}

func seedNotification(t *testing.T, svc *Service, userID, kind string, read bool, relatedUserID string) models.Notification {
	t.Helper()
	n := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   "t",
		Message: "m",
	}
	if relatedUserID != "" {
		n.RelatedUserID = &relatedUserID
	}
	require.NoError(t, svc.Create(context.Background(), &n))
	if read {
		require.NoError(t, svc.db.Model(&n).Update("read", true).Error)
	}
	return n
}

func TestUnreadCount(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "")
	seedNotification(t, svc, "u1", models.NotificationTypeComment, false, "")
	seedNotification(t, svc, "u1", models.NotificationTypeLike, true, "")
	seedNotification(t, svc, "u2", models.NotificationTypeLike, false, "")

	count, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = svc.UnreadCount(ctx, "nobody")
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestMarkReadAffectsCount(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	n := seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "")
	seedNotification(t, svc, "u1", models.NotificationTypeComment, false, "")

	require.NoError(t, svc.MarkRead(ctx, n.ID, "u1"))

	count, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestMarkReadWrongOwner(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	n := seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "")

	err := svc.MarkRead(context.Background(), n.ID, "intruder")
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apierrors.CodeNotificationNotFound, apiErr.Code)
}

func TestMarkAllRead(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "")
	seedNotification(t, svc, "u1", models.NotificationTypeComment, false, "")
	other := seedNotification(t, svc, "u2", models.NotificationTypeLike, false, "")

	require.NoError(t, svc.MarkAllRead(ctx, "u1"))

	count, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	// Other inboxes stay untouched.
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", other.ID).Error)
	require.False(t, reloaded.Read)
}

func TestDeleteNotification(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	n := seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "")
	require.NoError(t, svc.Delete(ctx, n.ID, "u1"))

	err := svc.Delete(ctx, n.ID, "u1")
	require.Error(t, err, "deleting twice must report not found")
}

func TestListAttachesRelatedProfiles(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Profile{UserID: "actor", Username: "act", FullName: "Act Or"}).Error)
	seedNotification(t, svc, "u1", models.NotificationTypeLike, false, "actor")
	seedNotification(t, svc, "u1", models.NotificationTypeComment, false, "")

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	var withActor, withoutActor int
	for _, n := range items {
		if n.RelatedUserProfile != nil {
			withActor++
			require.Equal(t, "Act Or", n.RelatedUserProfile.FullName)
		} else {
			withoutActor++
		}
	}
	require.Equal(t, 1, withActor)
	require.Equal(t, 1, withoutActor)
}
