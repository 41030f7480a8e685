package repository

import (
	"context"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrPostNotFound is returned when no post matches the lookup.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines persistence for posts and their like sets.
type PostRepository interface {
	// FindByID retrieves a post including its like set.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// FindByOwner retrieves the posts of a user in creation order.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error)

	// Create persists a new post and appends its id to the owner's post list.
	Create(ctx context.Context, post *entity.Post) error

	// Update writes title, content and image path of an existing post.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post and detaches it from its owner's post list.
	Delete(ctx context.Context, post *entity.Post) error

	// ToggleLike atomically adds userID to the like set when absent and removes it
	// when present, reporting whether the post is liked by userID afterwards.
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}
