package models

import (
	"time"
)

// Content kinds. Stories are caption-less and share the content table with
// posts, distinguished by Kind.
const (
	ContentKindPost  = "post"
	ContentKindStory = "story"
)

// ContentItem represents a single authored unit of media (a post or a
// story). MediaRef is the opaque name the media store returned for the
// uploaded blob; the core never inspects file bytes.
type ContentItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	MediaRef string `gorm:"not null" json:"media_ref"`
	Caption  string `json:"caption"`
	Kind     string `gorm:"not null;default:post;index" json:"kind"`
	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the requesting user liked this item (computed).
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}
