package feed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Market{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.SavedPost{},
		&models.Notification{},
	))
	return db
}

func createPost(t *testing.T, db *gorm.DB, userID string, marketID uint, createdAt time.Time) models.Post {
	t.Helper()
	p := models.Post{UserID: userID, MarketID: marketID, Content: "contenido"}
	require.NoError(t, db.Create(&p).Error)
	// CreatedAt is set explicitly so ordering assertions are deterministic.
	require.NoError(t, db.Model(&p).Update("created_at", createdAt).Error)
	p.CreatedAt = createdAt
	return p
}

func TestFetchEmptyMarketSelection(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	// Dropping the posts table proves the empty selection short-circuits
	// before any store read.
	require.NoError(t, db.Migrator().DropTable(&models.Post{}))

	items, err := svc.Fetch(context.Background(), "viewer", nil)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = svc.Fetch(context.Background(), "viewer", []uint{})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFetchFiltersByMarket(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	now := time.Now().UTC()

	inMarket := createPost(t, db, "author", 1, now)
	createPost(t, db, "author", 2, now)
	alsoIn := createPost(t, db, "author", 3, now.Add(-time.Minute))

	items, err := svc.Fetch(context.Background(), "viewer", []uint{1, 3})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, inMarket.ID, items[0].ID)
	require.Equal(t, alsoIn.ID, items[1].ID)
}

func TestFetchOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	now := time.Now().UTC()

	oldest := createPost(t, db, "author", 1, now.Add(-2*time.Hour))
	newest := createPost(t, db, "author", 1, now)
	middle := createPost(t, db, "author", 1, now.Add(-time.Hour))

	items, err := svc.Fetch(context.Background(), "viewer", []uint{1})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, newest.ID, items[0].ID)
	require.Equal(t, middle.ID, items[1].ID)
	require.Equal(t, oldest.ID, items[2].ID)
}

func TestFetchRespectsPageSize(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db).WithPageSize(5)
	now := time.Now().UTC()

	for i := 0; i < 8; i++ {
		createPost(t, db, "author", 1, now.Add(-time.Duration(i)*time.Minute))
	}

	items, err := svc.Fetch(context.Background(), "viewer", []uint{1})
	require.NoError(t, err)
	require.Len(t, items, 5)
}

func TestFetchJoinsEngagement(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	now := time.Now().UTC()

	post := createPost(t, db, "author", 1, now)
	require.NoError(t, db.Create(&models.Profile{UserID: "author", Username: "autor", FullName: "Autora Pérez"}).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: "viewer"}).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: "other"}).Error)
	require.NoError(t, db.Create(&models.PostComment{PostID: post.ID, UserID: "other", Content: "hola"}).Error)
	require.NoError(t, db.Create(&models.SavedPost{PostID: post.ID, UserID: "other"}).Error)

	items, err := svc.Fetch(context.Background(), "viewer", []uint{1})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	require.Equal(t, 2, item.LikesCount)
	require.Equal(t, 1, item.CommentsCount)
	require.True(t, item.IsLiked)
	require.False(t, item.IsSaved)
	require.NotNil(t, item.Profile)
	require.Equal(t, "Autora Pérez", item.Profile.FullName)
}

func TestFetchAbortsOnReadFailure(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	createPost(t, db, "author", 1, time.Now().UTC())

	// A broken dependent read must fail the whole fetch, not yield a
	// partially reconciled page.
	require.NoError(t, db.Migrator().DropTable(&models.PostLike{}))

	items, err := svc.Fetch(context.Background(), "viewer", []uint{1})
	require.Error(t, err)
	require.Nil(t, items)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	createPost(t, db, "author", 1, time.Now().UTC())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Fetch(ctx, "viewer", []uint{1})
	require.Error(t, err)
}
