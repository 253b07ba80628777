package models

import "time"

// Follow represents a follower -> following edge. follower != following is
// enforced at request time, uniqueness by constraint.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowRequest carries the external identity id of the target user
type FollowRequest struct {
	FollowingID string `json:"following_id" validate:"required"`
}
