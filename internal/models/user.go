// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// RoleAdmin is the role name that grants administrative privileges.
const RoleAdmin = "admin"

// User represents a user profile in the Ungatekeep application.
// AuthID links the profile to the externally verified identity (JWT subject)
// and is unique across users. Username is optional; when present it must be
// unique, which the nullable pointer column preserves (NULLs never collide).
type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	AuthID    string  `gorm:"column:auth_id;uniqueIndex;not null" json:"auth_id"`
	Username  *string `gorm:"uniqueIndex" json:"username,omitempty"`
	Bio       string  `json:"bio"`
	AvatarURL string  `gorm:"column:avatar_url" json:"avatar_url"`
	Role      string  `json:"role"`
	LikeEmoji string  `gorm:"column:like_emoji" json:"like_emoji"`
	// UsernameUpdatedAt is the instant of the most recent successful username
	// change, seeded at registration. The cooldown policy reads it.
	UsernameUpdatedAt time.Time `gorm:"column:username_updated_at" json:"username_updated_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsAdmin reports whether the persisted profile carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
