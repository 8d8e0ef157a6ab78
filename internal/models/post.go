// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Ungatekeep application.
//
// ImageRefs is the persisted comma-joined form of the image reference list;
// Images is the in-memory list. The repository maps between the two at its
// boundary; the entity carries no load/save hooks and no stored like counter.
// Like counts live exclusively in the likes relation set.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Caption   string    `json:"caption"`
	ImageRefs string    `gorm:"column:image_refs;not null" json:"-"`
	Images    []string  `gorm:"-" json:"images"`
	CreatedAt time.Time `json:"created_at"`
}
