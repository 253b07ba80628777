// Package stats attaches derived per-post counters and viewer flags to
// pages of posts. Counts are never stored; every read recomputes them from
// the like and comment tables. The feed, post-detail and profile endpoints
// all share this one routine.
package stats

import (
	"context"
	"log"

	"github.com/plumeria-dev/snapfeed/backend/internal/models"
	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// maxConcurrent bounds the per-post fan-out so a large page cannot flood
// the connection pool.
const maxConcurrent = 8

// Aggregator computes likes_count, comments_count, is_liked and
// is_bookmarked for a page of posts.
type Aggregator struct {
	likeRepository     repositories.LikeRepository
	commentRepository  repositories.CommentRepository
	bookmarkRepository repositories.BookmarkRepository
}

// NewAggregator creates a new Aggregator
func NewAggregator(likeRepo repositories.LikeRepository, commentRepo repositories.CommentRepository, bookmarkRepo repositories.BookmarkRepository) *Aggregator {
	return &Aggregator{
		likeRepository:     likeRepo,
		commentRepository:  commentRepo,
		bookmarkRepository: bookmarkRepo,
	}
}

// Enrich returns the posts in their input order, each augmented with the
// derived fields. viewerID of zero means an anonymous viewer. The sub-queries
// for each post run concurrently; a failure for one post downgrades that
// post to zero counts and false flags without affecting the rest of the page.
func (a *Aggregator) Enrich(ctx context.Context, posts []models.Post, viewerID uint) []models.EnrichedPost {
	enriched := make([]models.EnrichedPost, len(posts))

	// The bookmark flags come from one batched lookup rather than a query
	// per post; on failure every flag stays false.
	var bookmarkedIDs map[uint]bool
	if viewerID != 0 {
		postIDs := make([]uint, len(posts))
		for i, p := range posts {
			postIDs[i] = p.ID
		}
		ids, err := a.bookmarkRepository.GetBookmarkedPostIDs(viewerID, postIDs)
		if err != nil {
			log.Printf("stats: bookmark lookup failed for viewer %d: %v", viewerID, err)
		} else {
			bookmarkedIDs = ids
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i := range posts {
		i := i
		g.Go(func() error {
			post := posts[i]
			enriched[i] = models.EnrichedPost{
				Post:         post,
				IsBookmarked: bookmarkedIDs[post.ID],
			}

			likes, err := a.likeRepository.GetLikesCountByPostID(post.ID)
			if err != nil {
				log.Printf("stats: likes count failed for post %d: %v", post.ID, err)
				return nil
			}

			comments, err := a.commentRepository.GetCommentsCountByPostID(post.ID)
			if err != nil {
				log.Printf("stats: comments count failed for post %d: %v", post.ID, err)
				return nil
			}

			isLiked := false
			if viewerID != 0 {
				liked, err := a.likeRepository.HasUserLikedPost(viewerID, post.ID)
				if err != nil {
					log.Printf("stats: like status failed for post %d: %v", post.ID, err)
					return nil
				}
				isLiked = liked
			}

			enriched[i].LikesCount = likes
			enriched[i].CommentsCount = comments
			enriched[i].IsLiked = isLiked
			return nil
		})
	}

	// Workers never return errors; failures are isolated per post.
	_ = g.Wait()

	return enriched
}

// EnrichOne is the single-post variant used by the detail endpoint
func (a *Aggregator) EnrichOne(ctx context.Context, post models.Post, viewerID uint) models.EnrichedPost {
	return a.Enrich(ctx, []models.Post{post}, viewerID)[0]
}
