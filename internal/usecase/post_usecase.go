package usecase

import (
	"context"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePostInput defines a new post. Image is optional.
type CreatePostInput struct {
	Title   string
	Content string
	Image   *UploadInput
}

// EditPostInput replaces title and content. A nil Image keeps the current one.
type EditPostInput struct {
	Title   string
	Content string
	Image   *UploadInput
}

// PostUsecase defines post ownership and like operations.
type PostUsecase interface {
	CreatePost(ctx context.Context, ownerID uuid.UUID, input *CreatePostInput) (*entity.Post, error)
	GetPostForEdit(ctx context.Context, callerID, postID uuid.UUID) (*entity.Post, error)
	EditPost(ctx context.Context, callerID, postID uuid.UUID, input *EditPostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, callerID, postID uuid.UUID) error
	ToggleLike(ctx context.Context, callerID, postID uuid.UUID) (*entity.Post, error)
}
