// Package apiclient is a typed Go client for the snapfeed HTTP API. It
// carries the behavioral contracts the web client upholds: optimistic
// like/follow/bookmark toggles with rollback, and a feed pager that never
// shows the same post twice.
package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Post is the enriched post shape returned by the feed and detail endpoints
type Post struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	ImageURL      string    `json:"image_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	MediaType     string    `json:"media_type"`
	Caption       string    `json:"caption,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `json:"user"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	IsBookmarked  bool      `json:"is_bookmarked"`
}

// User is the user shape returned by the API
type User struct {
	ID        uint   `json:"id"`
	AuthUID   string `json:"auth_uid"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Pagination is the page envelope on list responses
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"hasMore"`
}

// PostPage is one page of the feed
type PostPage struct {
	Success    bool       `json:"success"`
	Data       []Post     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

type toggleResponse struct {
	Success      bool `json:"success"`
	IsLiked      bool `json:"is_liked"`
	IsFollowing  bool `json:"is_following"`
	IsBookmarked bool `json:"is_bookmarked"`
}

type userResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// Client talks to the snapfeed API with a bearer token
type Client struct {
	http *resty.Client
}

// New creates a Client for the given base URL and bearer token
func New(baseURL, token string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: httpClient}
}

// SyncUser upserts the caller's user row from the identity provider state.
// Safe to call on every sign-in; the server short-circuits repeats.
func (c *Client) SyncUser(ctx context.Context) (*User, error) {
	var out userResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/api/sync-user")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ListPosts fetches one feed page
func (c *Client) ListPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	var out PostPage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     fmt.Sprintf("%d", page),
			"pageSize": fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/api/posts")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleLike flips the like state server-side and returns the new state
func (c *Client) ToggleLike(ctx context.Context, postID uint) (bool, error) {
	var out toggleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]uint{"post_id": postID}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/api/likes")
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}
	return out.IsLiked, nil
}

// Follow adds a follow edge toward the user with the given external id
func (c *Client) Follow(ctx context.Context, followingID string) (bool, error) {
	return c.sendFollow(ctx, resty.MethodPost, followingID)
}

// Unfollow removes the follow edge
func (c *Client) Unfollow(ctx context.Context, followingID string) (bool, error) {
	return c.sendFollow(ctx, resty.MethodDelete, followingID)
}

func (c *Client) sendFollow(ctx context.Context, method, followingID string) (bool, error) {
	var out toggleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"following_id": followingID}).
		SetResult(&out).
		SetError(&apiError{}).
		Execute(method, "/api/follows")
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}
	return out.IsFollowing, nil
}

// AddBookmark bookmarks a post
func (c *Client) AddBookmark(ctx context.Context, postID uint) (bool, error) {
	return c.sendBookmark(ctx, resty.MethodPost, postID)
}

// RemoveBookmark removes a bookmark
func (c *Client) RemoveBookmark(ctx context.Context, postID uint) (bool, error) {
	return c.sendBookmark(ctx, resty.MethodDelete, postID)
}

func (c *Client) sendBookmark(ctx context.Context, method string, postID uint) (bool, error) {
	var out toggleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]uint{"post_id": postID}).
		SetResult(&out).
		SetError(&apiError{}).
		Execute(method, "/api/bookmarks")
	if err := checkResponse(resp, err); err != nil {
		return false, err
	}
	return out.IsBookmarked, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Error != "" {
			return fmt.Errorf("api: %s (%s)", apiErr.Error, resp.Status())
		}
		return fmt.Errorf("api: unexpected status %s", resp.Status())
	}
	return nil
}
