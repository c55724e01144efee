// Package feed builds the market-scoped home feed. A fetch is two phases:
// a primary read of posts for the viewer's selected markets, then a batch of
// dependent reads (profiles, likes, comments, saves) keyed by the id sets of
// the first phase. The phases never interleave with rendering state; the
// result is reconciled wholesale on every fetch.
package feed

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/metrics"
	"github.com/conectapro/backend/internal/models"
)

const (
	// DefaultPageSize caps the primary read.
	DefaultPageSize = 20
	// DefaultQueryTimeout bounds the whole fetch cycle.
	DefaultQueryTimeout = 10 * time.Second
)

// Service queries and reconciles feed pages.
type Service struct {
	db       *gorm.DB
	pageSize int
	timeout  time.Duration
}

// NewService creates a feed service with default paging and timeout.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		pageSize: DefaultPageSize,
		timeout:  DefaultQueryTimeout,
	}
}

// WithPageSize overrides the page size. Zero or negative keeps the default.
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// WithTimeout overrides the fetch deadline. Zero or negative keeps the default.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Fetch returns the reconciled feed page for the viewer. An empty market
// selection returns an empty page without touching the store. Any read
// failure aborts the whole fetch; partial pages are never returned.
func (s *Service) Fetch(ctx context.Context, viewerID string, marketIDs []uint) ([]Item, error) {
	if len(marketIDs) == 0 {
		metrics.Get().FeedEmptyTotal.WithLabelValues("home").Inc()
		return []Item{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("market_id IN ?", marketIDs).
		Order("created_at DESC").
		Limit(s.pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	metrics.Get().FeedBuildDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())

	if len(posts) == 0 {
		return []Item{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	seenAuthors := make(map[string]bool, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if !seenAuthors[p.UserID] {
			seenAuthors[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	// The four dependent reads only depend on the primary read's id sets,
	// so they run concurrently under the same deadline.
	var (
		profiles []models.Profile
		likes    []models.PostLike
		comments []models.PostComment
		saves    []models.SavedPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("user_id IN ?", authorIDs).Find(&profiles).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("post_id IN ?", postIDs).Find(&likes).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("post_id IN ?", postIDs).Find(&comments).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("post_id IN ?", postIDs).Find(&saves).Error
	})
	if err := g.Wait(); err != nil {
		logger.WarnWithFields("feed dependent reads failed",
			logger.WithUserID(viewerID),
			logger.WithError(err),
		)
		return nil, err
	}

	items := Reconcile(posts, profiles, likes, comments, saves, viewerID)

	metrics.Get().FeedBuildDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
	metrics.Get().FeedItemsReturned.WithLabelValues("home").Observe(float64(len(items)))

	return items, nil
}
