package feed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/models"
)

func likeCount(t *testing.T, db *gorm.DB, postID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&n).Error)
	return n
}

func notificationCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func TestToggleLikeRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	liked, err := svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.True(t, liked)
	require.EqualValues(t, 1, likeCount(t, db, post.ID))

	liked, err = svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.False(t, liked)
	require.EqualValues(t, 0, likeCount(t, db, post.ID), "two toggles must restore the original state")
}

func TestToggleLikeNotifiesAuthor(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())
	require.NoError(t, db.Create(&models.Profile{UserID: "viewer", Username: "vi", FullName: "Vera Ibáñez"}).Error)

	_, err := svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)

	var n models.Notification
	require.NoError(t, db.Where("user_id = ?", "author").First(&n).Error)
	require.Equal(t, models.NotificationTypeLike, n.Type)
	require.Equal(t, "Nueva reacción", n.Title)
	require.Contains(t, n.Message, "Vera Ibáñez")
	require.NotNil(t, n.RelatedUserID)
	require.Equal(t, "viewer", *n.RelatedUserID)
	require.NotNil(t, n.RelatedPostID)
	require.Equal(t, post.ID, *n.RelatedPostID)
	require.False(t, n.Read)
}

func TestToggleLikeOwnPostDoesNotNotify(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	liked, err := svc.ToggleLike(ctx, post.ID, "author")
	require.NoError(t, err)
	require.True(t, liked)
	require.EqualValues(t, 0, notificationCount(t, db, "author"))
}

func TestToggleLikeUnlikeDoesNotNotify(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	_, err := svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.EqualValues(t, 1, notificationCount(t, db, "author"))

	_, err = svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.EqualValues(t, 1, notificationCount(t, db, "author"), "removing a like must not emit anything")
}

func TestToggleLikePostNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, err := svc.ToggleLike(context.Background(), "missing", "viewer")
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apierrors.CodePostNotFound, apiErr.Code)
}

func TestToggleSaveRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	saved, err := svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.True(t, saved)

	var n int64
	require.NoError(t, db.Model(&models.SavedPost{}).Where("post_id = ?", post.ID).Count(&n).Error)
	require.EqualValues(t, 1, n)

	saved, err = svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.False(t, saved)

	require.NoError(t, db.Model(&models.SavedPost{}).Where("post_id = ?", post.ID).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestToggleSaveNeverNotifies(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	_, err := svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)

	require.EqualValues(t, 0, notificationCount(t, db, "author"))
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	require.True(t, isUniqueViolation(fmt.Errorf("insert like: %w", &pq.Error{Code: "23505"})))
	require.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueViolation(fmt.Errorf("insert like: %w", gorm.ErrDuplicatedKey)))

	require.False(t, isUniqueViolation(nil))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("connection reset")))
	require.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

// openRaceTestDB enables gorm error translation so the SQLite unique
// violation surfaces as gorm.ErrDuplicatedKey, the same shape the toggles
// see when the pair index rejects a racing insert.
func openRaceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.InitializeForTests()

	dsn := filepath.Join(t.TempDir(), "race.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.PostLike{},
		&models.SavedPost{},
		&models.Notification{},
	))
	return db
}

func TestToggleLikeLosesInsertRace(t *testing.T) {
	db := openRaceTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	// A competing request lands the same like between this request's
	// existence check and its insert.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("competing_like_insert", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "post_likes" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).
			Create(&models.PostLike{PostID: post.ID, UserID: "viewer"})
	})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err, "a duplicate insert must read as already-liked, not an error")
	require.True(t, liked)
	require.EqualValues(t, 1, likeCount(t, db, post.ID))
	require.EqualValues(t, 0, notificationCount(t, db, "author"),
		"the losing request must not notify a second time")
}

func TestToggleSaveLosesInsertRace(t *testing.T) {
	db := openRaceTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("competing_save_insert", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "saved_posts" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).
			Create(&models.SavedPost{PostID: post.ID, UserID: "viewer"})
	})
	require.NoError(t, err)

	saved, err := svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)
	require.True(t, saved)

	var n int64
	require.NoError(t, db.Model(&models.SavedPost{}).Where("post_id = ?", post.ID).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestToggleVisibleInNextFetch(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	post := createPost(t, db, "author", 1, time.Now().UTC())

	_, err := svc.ToggleLike(ctx, post.ID, "viewer")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, post.ID, "viewer")
	require.NoError(t, err)

	items, err := svc.Fetch(ctx, "viewer", []uint{1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].IsLiked)
	require.True(t, items[0].IsSaved)
	require.Equal(t, 1, items[0].LikesCount)

	// Another viewer sees the count but not the personal flags.
	items, err = svc.Fetch(ctx, "someone-else", []uint{1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].IsLiked)
	require.False(t, items[0].IsSaved)
	require.Equal(t, 1, items[0].LikesCount)
}
