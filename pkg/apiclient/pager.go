package apiclient

import (
	"context"
	"errors"
	"sync"
)

// ErrFetchInFlight is returned when LoadMore is called while a page fetch
// is already running; overlapping page requests are never issued.
var ErrFetchInFlight = errors.New("apiclient: page fetch already in flight")

// FeedPager walks the feed page by page, deduplicating by post id. Offset
// pagination can hand back a post already shown when rows are inserted
// between fetches; the pager drops those instead of re-showing them.
type FeedPager struct {
	client   *Client
	pageSize int

	mu       sync.Mutex
	fetching bool
	nextPage int
	hasMore  bool
	seen     map[uint]struct{}
	posts    []Post
}

// NewFeedPager creates a pager starting at page 1
func NewFeedPager(client *Client, pageSize int) *FeedPager {
	return &FeedPager{
		client:   client,
		pageSize: pageSize,
		nextPage: 1,
		hasMore:  true,
		seen:     make(map[uint]struct{}),
	}
}

// HasMore reports whether the server claims more pages. Derived from the
// reported total, so it can be stale if rows are deleted between pages;
// the next fetch settles it.
func (p *FeedPager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Posts returns the accumulated deduplicated feed
func (p *FeedPager) Posts() []Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Post, len(p.posts))
	copy(out, p.posts)
	return out
}

// LoadMore fetches the next page and returns the posts that were actually
// new. Returns ErrFetchInFlight when called during an ongoing fetch.
func (p *FeedPager) LoadMore(ctx context.Context) ([]Post, error) {
	p.mu.Lock()
	if p.fetching {
		p.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	if !p.hasMore {
		p.mu.Unlock()
		return nil, nil
	}
	p.fetching = true
	page := p.nextPage
	p.mu.Unlock()

	result, err := p.client.ListPosts(ctx, page, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetching = false
	if err != nil {
		return nil, err
	}

	var fresh []Post
	for _, post := range result.Data {
		if _, dup := p.seen[post.ID]; dup {
			continue
		}
		p.seen[post.ID] = struct{}{}
		fresh = append(fresh, post)
	}
	p.posts = append(p.posts, fresh...)
	p.nextPage = page + 1
	p.hasMore = result.Pagination.HasMore

	return fresh, nil
}
