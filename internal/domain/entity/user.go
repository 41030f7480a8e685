// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is an account that can log in, own posts and like posts of others.
type User struct {
	ID           uuid.UUID   // Store-assigned identifier, immutable once created.
	Email        string      // Unique login key.
	Name         string      // Display name.
	Username     string      // Free-form handle chosen at registration.
	Age          int         // Self-reported age, zero when not given.
	PasswordHash string      // bcrypt hash, never the plaintext.
	AvatarPath   string      // Public path of the current avatar, empty when none was uploaded.
	PostIDs      []uuid.UUID // Owned posts in creation order.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAvatar reports whether an avatar was uploaded.
func (u *User) HasAvatar() bool {
	return u.AvatarPath != ""
}

// OwnsPost reports whether postID is in the user's post list.
func (u *User) OwnsPost(postID uuid.UUID) bool {
	return slices.Contains(u.PostIDs, postID)
}
