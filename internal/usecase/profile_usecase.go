package usecase

import (
	"context"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileOutput is a user together with its posts in post-list order.
type ProfileOutput struct {
	User  *entity.User
	Posts []*entity.Post
}

// ProfileUsecase defines the operations on the caller's own profile.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)
	ReplaceAvatar(ctx context.Context, userID uuid.UUID, upload *UploadInput) (*entity.User, error)
}
