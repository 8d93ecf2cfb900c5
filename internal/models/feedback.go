package models

import (
	"time"
)

// Feedback is an entry on the feedback board. Ownership is bound to the
// authenticated author captured at submission time, not to a caller-supplied
// label.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
