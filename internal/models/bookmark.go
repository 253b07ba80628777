package models

import "time"

// Bookmark represents a bookmarked post. Adding an existing bookmark is a
// no-op success; the unique constraint is what makes the add idempotent.
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_bookmark_user_post"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_bookmark_user_post"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"post" gorm:"foreignKey:PostID"`
}

// BookmarkRequest defines the request body for adding/removing a bookmark
type BookmarkRequest struct {
	PostID uint `json:"post_id" validate:"required"`
}
