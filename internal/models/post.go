package models

import "time"

// Media kinds. Exactly one of ImageURL/VideoURL is populated per post and
// MediaType must name the populated one.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post represents a feed post
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ImageURL  string    `json:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	MediaType string    `json:"media_type"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// HasMedia reports whether either media reference is populated
func (p *Post) HasMedia() bool {
	return p.ImageURL != "" || p.VideoURL != ""
}

// EnrichedPost is a post augmented with derived counters and viewer flags
type EnrichedPost struct {
	Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       bool  `json:"is_liked"`
	IsBookmarked  bool  `json:"is_bookmarked"`
}

// CreatePostRequest defines the request body for creating a post
type CreatePostRequest struct {
	ImageURL  string `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL  string `json:"video_url,omitempty" validate:"omitempty,url"`
	MediaType string `json:"media_type,omitempty" validate:"omitempty,oneof=image video"`
	Caption   string `json:"caption,omitempty" validate:"omitempty,max=2000"`
}
