package apiclient

import (
	"context"

	"github.com/plumeria-dev/snapfeed/backend/pkg/optimistic"
)

// LikeState is the local view the like toggle mutates
type LikeState struct {
	Liked bool
	Count int64
}

// FollowState is the local view the follow toggle mutates
type FollowState struct {
	Following bool
	Followers int64
}

// BookmarkState is the local view the bookmark toggle mutates
type BookmarkState struct {
	Bookmarked bool
}

// LikeToggler returns the optimistic toggle for a post's like state. The
// flag and counter flip before the request; a failed request restores both.
func (c *Client) LikeToggler(post *Post) *optimistic.Toggler[LikeState] {
	return &optimistic.Toggler[LikeState]{
		Read: func() LikeState {
			return LikeState{Liked: post.IsLiked, Count: post.LikesCount}
		},
		Apply: func(s LikeState) LikeState {
			if s.Liked {
				return LikeState{Liked: false, Count: s.Count - 1}
			}
			return LikeState{Liked: true, Count: s.Count + 1}
		},
		Send: func(ctx context.Context, prev LikeState) (LikeState, error) {
			liked, err := c.ToggleLike(ctx, post.ID)
			if err != nil {
				return LikeState{}, err
			}
			count := prev.Count
			if liked && !prev.Liked {
				count++
			} else if !liked && prev.Liked {
				count--
			}
			return LikeState{Liked: liked, Count: count}, nil
		},
		Write: func(s LikeState) {
			post.IsLiked = s.Liked
			post.LikesCount = s.Count
		},
	}
}

// FollowToggler returns the optimistic toggle for following the user with
// the given external id. The client's pre-flip state picks POST vs DELETE.
func (c *Client) FollowToggler(followingID string, state *FollowState) *optimistic.Toggler[FollowState] {
	return &optimistic.Toggler[FollowState]{
		Read: func() FollowState { return *state },
		Apply: func(s FollowState) FollowState {
			if s.Following {
				return FollowState{Following: false, Followers: s.Followers - 1}
			}
			return FollowState{Following: true, Followers: s.Followers + 1}
		},
		Send: func(ctx context.Context, prev FollowState) (FollowState, error) {
			var (
				following bool
				err       error
			)
			if prev.Following {
				following, err = c.Unfollow(ctx, followingID)
			} else {
				following, err = c.Follow(ctx, followingID)
			}
			if err != nil {
				return FollowState{}, err
			}
			followers := prev.Followers
			if following && !prev.Following {
				followers++
			} else if !following && prev.Following {
				followers--
			}
			return FollowState{Following: following, Followers: followers}, nil
		},
		Write: func(s FollowState) { *state = s },
	}
}

// BookmarkToggler returns the optimistic toggle for a post's bookmark
// state. The confirmed state is whatever the server reports, which makes
// duplicate adds settle on true.
func (c *Client) BookmarkToggler(post *Post) *optimistic.Toggler[BookmarkState] {
	return &optimistic.Toggler[BookmarkState]{
		Read: func() BookmarkState {
			return BookmarkState{Bookmarked: post.IsBookmarked}
		},
		Apply: func(s BookmarkState) BookmarkState {
			return BookmarkState{Bookmarked: !s.Bookmarked}
		},
		Send: func(ctx context.Context, prev BookmarkState) (BookmarkState, error) {
			var (
				bookmarked bool
				err        error
			)
			if prev.Bookmarked {
				bookmarked, err = c.RemoveBookmark(ctx, post.ID)
			} else {
				bookmarked, err = c.AddBookmark(ctx, post.ID)
			}
			if err != nil {
				return BookmarkState{}, err
			}
			return BookmarkState{Bookmarked: bookmarked}, nil
		},
		Write: func(s BookmarkState) { post.IsBookmarked = s.Bookmarked },
	}
}
