package models

import (
	"time"
)

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique; the composite index is
// what makes concurrent toggles safe. Rows are created and hard-deleted, never
// updated in place.
type Like struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID  uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	LikedAt time.Time `gorm:"column:liked_at;autoCreateTime" json:"liked_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}
