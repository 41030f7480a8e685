package impl

import (
	"context"
	"log/slog"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"
	"postboard/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// postService implements the PostUsecase interface. Every mutation loads the
// post and authorizes the caller before any file or row is written.
type postService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	media    service.MediaStorage
	logger   *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	PostRepo repository.PostRepository
	Media    service.MediaStorage
	Logger   *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		userRepo: params.UserRepo,
		postRepo: params.PostRepo,
		media:    params.Media,
		logger:   params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePost stores the optional image and appends a new post to the owner's list.
func (srv *postService) CreatePost(ctx context.Context, ownerID uuid.UUID, input *usecase.CreatePostInput) (*entity.Post, error) {
	if _, err := srv.userRepo.FindByID(ctx, ownerID); err != nil {
		return nil, translateRepoError(err, "failed to get post owner")
	}

	post := &entity.Post{
		OwnerID: ownerID,
		Title:   input.Title,
		Content: input.Content,
		LikedBy: []uuid.UUID{},
	}

	imagePath, err := srv.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}
	post.ImagePath = imagePath

	if err := srv.postRepo.Create(context.WithoutCancel(ctx), post); err != nil {
		return nil, translateRepoError(err, "failed to create post")
	}

	srv.log(ctx).Info("Post created",
		slog.String("post_id", post.ID.String()),
		slog.String("owner_id", ownerID.String()),
	)

	return post, nil
}

// GetPostForEdit returns the post only to its owner.
func (srv *postService) GetPostForEdit(ctx context.Context, callerID, postID uuid.UUID) (*entity.Post, error) {
	return srv.loadForMutation(ctx, callerID, postID)
}

// EditPost replaces title and content, and the image when a new one is uploaded.
func (srv *postService) EditPost(ctx context.Context, callerID, postID uuid.UUID, input *usecase.EditPostInput) (*entity.Post, error) {
	post, err := srv.loadForMutation(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}

	imagePath, err := srv.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	if imagePath != "" {
		post.ImagePath = imagePath
	}

	if err := srv.postRepo.Update(context.WithoutCancel(ctx), post); err != nil {
		return nil, translateRepoError(err, "failed to update post")
	}

	return post, nil
}

// DeletePost removes the post and detaches it from its owner.
func (srv *postService) DeletePost(ctx context.Context, callerID, postID uuid.UUID) error {
	post, err := srv.loadForMutation(ctx, callerID, postID)
	if err != nil {
		return err
	}

	if err := srv.postRepo.Delete(context.WithoutCancel(ctx), post); err != nil {
		return translateRepoError(err, "failed to delete post")
	}

	srv.log(ctx).Info("Post deleted", slog.String("post_id", postID.String()))

	return nil
}

// ToggleLike flips the caller's like on any post, including its own.
func (srv *postService) ToggleLike(ctx context.Context, callerID, postID uuid.UUID) (*entity.Post, error) {
	if _, err := srv.userRepo.FindByID(ctx, callerID); err != nil {
		return nil, translateRepoError(err, "failed to get caller")
	}

	post, err := srv.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, translateRepoError(err, "failed to get post")
	}

	liked, err := srv.postRepo.ToggleLike(context.WithoutCancel(ctx), postID, callerID)
	if err != nil {
		return nil, translateRepoError(err, "failed to toggle like")
	}
	post.SetLiked(callerID, liked)

	srv.log(ctx).Debug("Like toggled",
		slog.String("post_id", postID.String()),
		slog.Bool("liked", liked),
	)

	return post, nil
}

func (srv *postService) loadForMutation(ctx context.Context, callerID, postID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, translateRepoError(err, "failed to get post")
	}

	if err := post.AuthorizeMutation(callerID); err != nil {
		srv.log(ctx).Warn("Post mutation forbidden",
			slog.String("post_id", postID.String()),
			slog.String("caller_id", callerID.String()),
		)

		return nil, err
	}

	return post, nil
}

func (srv *postService) storeImage(ctx context.Context, image *usecase.UploadInput) (string, error) {
	if image == nil {
		return "", nil
	}

	stored, err := srv.media.Save(ctx, image.Filename, image.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to store post image", slog.Any("error", err))

		return "", domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	return stored.PublicPath, nil
}
