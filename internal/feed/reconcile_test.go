package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectapro/backend/internal/models"
)

func post(id, userID string, createdAt time.Time) models.Post {
	return models.Post{ID: id, UserID: userID, MarketID: 1, Content: "c", CreatedAt: createdAt}
}

func TestReconcileCountsAndFlags(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		post("p1", "author1", now),
		post("p2", "author2", now.Add(-time.Minute)),
	}
	profiles := []models.Profile{
		{ID: "pr1", UserID: "author1", Username: "ana", FullName: "Ana Ruiz"},
		{ID: "pr2", UserID: "author2", Username: "ben", FullName: "Ben Díaz"},
	}
	likes := []models.PostLike{
		{ID: "l1", PostID: "p1", UserID: "viewer"},
		{ID: "l2", PostID: "p1", UserID: "author2"},
		{ID: "l3", PostID: "p2", UserID: "author1"},
	}
	comments := []models.PostComment{
		{ID: "c1", PostID: "p2", UserID: "viewer", Content: "hola"},
	}
	saves := []models.SavedPost{
		{ID: "s1", PostID: "p2", UserID: "viewer"},
		{ID: "s2", PostID: "p1", UserID: "author1"},
	}

	items := Reconcile(posts, profiles, likes, comments, saves, "viewer")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, 2, first.LikesCount)
	assert.Equal(t, 0, first.CommentsCount)
	assert.True(t, first.IsLiked)
	assert.False(t, first.IsSaved, "another user's save must not mark the viewer's bookmark")
	require.NotNil(t, first.Profile)
	assert.Equal(t, "Ana Ruiz", first.Profile.FullName)

	second := items[1]
	assert.Equal(t, "p2", second.ID)
	assert.Equal(t, 1, second.LikesCount)
	assert.Equal(t, 1, second.CommentsCount)
	assert.False(t, second.IsLiked, "a like by someone else must not read as the viewer's")
	assert.True(t, second.IsSaved)
}

func TestReconcilePreservesPostOrder(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		post("p3", "u1", now),
		post("p1", "u2", now.Add(-time.Hour)),
		post("p2", "u3", now.Add(-2*time.Hour)),
	}

	items := Reconcile(posts, nil, nil, nil, nil, "viewer")
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ID)
	assert.Equal(t, "p1", items[1].ID)
	assert.Equal(t, "p2", items[2].ID)
}

func TestReconcileMissingProfile(t *testing.T) {
	posts := []models.Post{post("p1", "ghost", time.Now())}

	items := Reconcile(posts, nil, nil, nil, nil, "viewer")
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Profile)
	assert.Equal(t, 0, items[0].LikesCount)
	assert.False(t, items[0].IsLiked)
}

func TestReconcileEmptyInput(t *testing.T) {
	items := Reconcile(nil, nil, nil, nil, nil, "viewer")
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestReconcileViewerOwnPost(t *testing.T) {
	posts := []models.Post{post("p1", "viewer", time.Now())}
	likes := []models.PostLike{{ID: "l1", PostID: "p1", UserID: "viewer"}}

	items := Reconcile(posts, nil, likes, nil, nil, "viewer")
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].LikesCount)
	assert.True(t, items[0].IsLiked)
}
