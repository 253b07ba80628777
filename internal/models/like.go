package models

import "time"

// Like marks a post as liked by a user. Row existence is the liked state;
// there is no boolean column.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleLikeRequest defines the request body for the like toggle
type ToggleLikeRequest struct {
	PostID uint `json:"post_id" validate:"required"`
}
