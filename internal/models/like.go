package models

import (
	"time"
)

// Like represents a user's like on a content item. The (UserID, ContentID)
// pair is unique; the relation is a set, never a counter. Toggling relies on
// the unique index so two racing inserts cannot both land.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_content" json:"user_id"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_likes_user_content" json:"content_id"`
	CreatedAt time.Time `json:"created_at"`
}
