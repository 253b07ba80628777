// Package reconcile contains the background job that cleans up after the
// two-phase post-creation flow. A client creates the post row, uploads the
// media, then patches the row with the final reference; when the patch never
// arrives the row is left with no media. The sweeper deletes such rows once
// they are older than a grace period.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/plumeria-dev/snapfeed/backend/internal/repositories"
)

// Sweeper periodically deletes orphaned media-less posts
type Sweeper struct {
	postRepository repositories.PostRepository
	interval       time.Duration
	gracePeriod    time.Duration
	ctx            context.Context
	cancel         context.CancelFunc
}

// NewSweeper creates a new Sweeper
func NewSweeper(postRepo repositories.PostRepository, interval, gracePeriod time.Duration) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		postRepository: postRepo,
		interval:       interval,
		gracePeriod:    gracePeriod,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start begins the periodic sweep
func (s *Sweeper) Start() {
	log.Println("Starting orphan post sweeper")
	go s.run()
}

// Stop stops the sweeper
func (s *Sweeper) Stop() {
	s.cancel()
}

func (s *Sweeper) run() {
	// Run once on startup, then on the interval.
	s.Sweep(s.ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}

// Sweep deletes posts without media older than the grace period
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.gracePeriod)
	deleted, err := s.postRepository.DeleteOrphanPosts(ctx, cutoff)
	if err != nil {
		log.Printf("Orphan post sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Orphan post sweep deleted %d posts", deleted)
	}
}
