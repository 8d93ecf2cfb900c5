package models

import (
	"time"
)

// Follow is a directed edge in the social graph: FollowerID follows
// FolloweeID. The ordered pair is unique and self-edges are rejected before
// storage.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"followee_id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follows_edge" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}
