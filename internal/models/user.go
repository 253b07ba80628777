package models

import "time"

// User is the internal user row. AuthUID is the opaque id issued by the
// external identity provider and is the only link back to it; every other
// table joins on the internal ID.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthUID   string    `json:"auth_uid" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCompact is the author shape embedded in posts and comments
type UserCompact struct {
	ID        uint   `json:"id"`
	AuthUID   string `json:"auth_uid"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ToCompact strips the user down to the embedded author shape
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		AuthUID:   u.AuthUID,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

// UserStats are the derived profile counters, computed on read
type UserStats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// UserProfile is a user with stats and viewer-relative flags
type UserProfile struct {
	User
	Stats        UserStats `json:"stats"`
	IsFollowing  bool      `json:"is_following"`
	IsOwnProfile bool      `json:"is_own_profile"`
}

// UpdateProfileRequest defines the request body for editing the own profile
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
