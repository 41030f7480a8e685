package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type profileService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	media    service.MediaStorage
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	PostRepo repository.PostRepository
	Media    service.MediaStorage
	Logger   *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		postRepo: params.PostRepo,
		media:    params.Media,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the user and its posts ordered as in the user's post list.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "failed to get user")
	}

	posts, err := srv.postRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "failed to get posts")
	}

	return &usecase.ProfileOutput{
		User:  user,
		Posts: orderByPostList(posts, user.PostIDs),
	}, nil
}

// orderByPostList sorts posts by their position in ids; posts missing from ids go last.
func orderByPostList(posts []*entity.Post, ids []uuid.UUID) []*entity.Post {
	position := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}

	rank := func(p *entity.Post) int {
		if i, ok := position[p.ID]; ok {
			return i
		}

		return len(ids)
	}

	ordered := slices.Clone(posts)
	slices.SortStableFunc(ordered, func(a, b *entity.Post) int {
		return cmp.Compare(rank(a), rank(b))
	})

	return ordered
}

// ReplaceAvatar stores the upload and points the user's avatar at it. The
// previous file stays in storage.
func (srv *profileService) ReplaceAvatar(ctx context.Context, userID uuid.UUID, upload *usecase.UploadInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "failed to get user")
	}

	stored, err := srv.media.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to store avatar", slog.Any("error", err))

		return nil, domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	if err := srv.userRepo.UpdateAvatar(context.WithoutCancel(ctx), userID, stored.PublicPath); err != nil {
		return nil, translateRepoError(err, "failed to update avatar")
	}
	user.AvatarPath = stored.PublicPath

	srv.log(ctx).Info("Avatar replaced",
		slog.String("user_id", userID.String()),
		slog.String("path", stored.PublicPath),
	)

	return user, nil
}
