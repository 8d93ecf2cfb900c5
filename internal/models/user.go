// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in Harnect. The handle is the public display
// and login name; it is unique but mutable, so every other table references
// the immutable ID instead.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Handle is unique and mutable. Renaming is a single-row update guarded
	// by the unique index; referencing tables key on ID and are unaffected.
	Handle       string    `gorm:"uniqueIndex;not null" json:"handle"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Email        *string   `json:"email,omitempty"`
	Bio          string    `json:"bio"`
	PictureRef   string    `gorm:"default:user.png" json:"picture_ref"`
	Guest        bool      `gorm:"not null;default:false" json:"guest"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Content []ContentItem `gorm:"foreignKey:AuthorID" json:"content,omitempty"`
}

// Profile is the public view of a user together with the social-graph
// counts shown on the profile page.
type Profile struct {
	User           User  `json:"user"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	Following      bool  `json:"following"`
}
