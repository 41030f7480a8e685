package entity

import (
	"slices"
	"time"

	domainerrors "postboard/internal/domain/errors"

	"github.com/google/uuid"
)

// Post is a piece of content owned by exactly one user.
type Post struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // Immutable after creation.
	Title     string
	Content   string
	ImagePath string      // Public path of the attached image, empty when none.
	CreatedAt time.Time   // Set once at creation.
	LikedBy   []uuid.UUID // Set semantics: no duplicates, order irrelevant.
}

// IsOwnedBy reports whether userID owns the post.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// AuthorizeMutation gates edit and delete: only the owner may mutate a post.
// Any other caller gets ErrForbidden, whatever the payload.
func (p *Post) AuthorizeMutation(callerID uuid.UUID) error {
	if !p.IsOwnedBy(callerID) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// HasImage reports whether an image is attached.
func (p *Post) HasImage() bool {
	return p.ImagePath != ""
}

// IsLikedBy reports whether userID is in the like set.
func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	return slices.Contains(p.LikedBy, userID)
}

// LikeCount returns the number of distinct users who like the post.
func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

// ToggleLike flips userID's membership in the like set and reports whether
// the post is liked by userID afterwards. Applying it twice restores the set.
func (p *Post) ToggleLike(userID uuid.UUID) bool {
	liked := !p.IsLikedBy(userID)
	p.SetLiked(userID, liked)

	return liked
}

// SetLiked forces userID's membership in the like set.
func (p *Post) SetLiked(userID uuid.UUID, liked bool) {
	idx := slices.Index(p.LikedBy, userID)
	switch {
	case liked && idx == -1:
		p.LikedBy = append(p.LikedBy, userID)
	case !liked && idx != -1:
		p.LikedBy = slices.Delete(p.LikedBy, idx, idx+1)
	}
}
