package feed

import "github.com/conectapro/backend/internal/models"

// Item is a post joined with everything the client needs to render it.
// Items are derived values: never stored, rebuilt from the raw tables on
// every fetch.
type Item struct {
	models.Post

	Profile       *models.Profile `json:"profiles"`
	LikesCount    int             `json:"likes_count"`
	CommentsCount int             `json:"comments_count"`
	IsLiked       bool            `json:"is_liked"`
	IsSaved       bool            `json:"is_saved"`
}

// Reconcile joins posts with their engagement rows from the viewer's point
// of view. It is a pure function over its inputs.
//
// All lookups are pre-indexed by post id or user id before the merge loop,
// so the cost is linear in the row counts rather than posts times likes.
// Post order is preserved. A post whose author has no profile row keeps a
// nil Profile; the client renders a placeholder.
func Reconcile(
	posts []models.Post,
	profiles []models.Profile,
	likes []models.PostLike,
	comments []models.PostComment,
	saves []models.SavedPost,
	viewerID string,
) []Item {
	profileByUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		profileByUser[profiles[i].UserID] = &profiles[i]
	}

	likeCounts := make(map[string]int, len(posts))
	viewerLiked := make(map[string]bool)
	for _, l := range likes {
		likeCounts[l.PostID]++
		if l.UserID == viewerID {
			viewerLiked[l.PostID] = true
		}
	}

	commentCounts := make(map[string]int, len(posts))
	for _, c := range comments {
		commentCounts[c.PostID]++
	}

	viewerSaved := make(map[string]bool)
	for _, sp := range saves {
		if sp.UserID == viewerID {
			viewerSaved[sp.PostID] = true
		}
	}

	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, Item{
			Post:          p,
			Profile:       profileByUser[p.UserID],
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLiked:       viewerLiked[p.ID],
			IsSaved:       viewerSaved[p.ID],
		})
	}
	return items
}
