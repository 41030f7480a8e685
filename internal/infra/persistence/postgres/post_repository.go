package postgres

import (
	"context"

	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postRepository implements the repository.PostRepository interface.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{
		db: db,
	}
}

// FindByID retrieves a post with its like set.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel

	if err := repo.db.WithContext(ctx).
		Preload("Likes").
		Where("id = ?", id).
		First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostDomain(&postM), nil
}

// FindByOwner retrieves a user's posts in creation order.
func (repo *postRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error) {
	var postModels []*model.PostModel

	if err := repo.db.WithContext(ctx).
		Preload("Likes").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&postModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find posts by owner")
	}

	posts := make([]*entity.Post, 0, len(postModels))
	for _, postM := range postModels {
		posts = append(posts, toPostDomain(postM))
	}

	return posts, nil
}

// Create persists a new post. The owner's post list is derived from owner_id,
// so inserting the row is what appends it.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&model.UserModel{}).Where("id = ?", post.OwnerID).Count(&owners).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check post owner")
		}
		if owners == 0 {
			return repository.ErrUserNotFound
		}

		if err := tx.Omit(clause.Associations).Create(postM).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrUserNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
		}

		return nil
	})
	if err != nil {
		return err
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt

	return nil
}

// Update writes title, content and image path.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"image_path": nullableString(post.ImagePath),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Delete removes the post and its likes in one transaction.
func (repo *postRepository) Delete(ctx context.Context, post *entity.Post) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.PostLikeModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete post likes")
		}

		result := tx.Where("id = ?", post.ID).Delete(&model.PostModel{})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
		}

		if result.RowsAffected == 0 {
			return repository.ErrPostNotFound
		}

		return nil
	})
}

// ToggleLike removes the (post, user) pair when present, otherwise inserts it.
// Both steps run in one transaction so a toggle is never a read-modify-write of the whole set.
func (repo *postRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var liked bool

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts int64
		if err := tx.Model(&model.PostModel{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check post")
		}
		if posts == 0 {
			return repository.ErrPostNotFound
		}

		removed := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.PostLikeModel{})
		if removed.Error != nil {
			return domainerrors.NewDatabaseExecuteError(removed.Error, "failed to remove like")
		}
		if removed.RowsAffected > 0 {
			liked = false

			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.PostLikeModel{PostID: postID, UserID: userID}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to add like")
		}
		liked = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return liked, nil
}

// --- Mapper Functions ---

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	likedBy := make([]uuid.UUID, 0, len(data.Likes))
	for _, like := range data.Likes {
		likedBy = append(likedBy, like.UserID)
	}

	return &entity.Post{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Title:     data.Title,
		Content:   data.Content,
		ImagePath: derefString(data.ImagePath),
		CreatedAt: data.CreatedAt,
		LikedBy:   likedBy,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Title:     data.Title,
		Content:   data.Content,
		ImagePath: nullableString(data.ImagePath),
		CreatedAt: data.CreatedAt,
	}
}
