// Package postgres contains the GORM implementation of the persistence layer,
// used with PostgreSQL in production and SQLite for the embedded driver.
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
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a user and the ids of its posts in creation order.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a user by its login email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where(query, arg).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	var postIDs []uuid.UUID
	if err := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("owner_id = ?", userM.ID).
		Order("created_at ASC, id ASC").
		Pluck("id", &postIDs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list user posts")
	}

	return toUserDomain(&userM, postIDs), nil
}

// Create persists a new user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateAvatar replaces the avatar path of a user.
func (repo *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarPath string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("avatar_path", nullableString(avatarPath))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update avatar")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel, postIDs []uuid.UUID) *entity.User {
	if data == nil {
		return nil
	}

	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		Username:     data.Username,
		Age:          data.Age,
		PasswordHash: data.PasswordHash,
		AvatarPath:   derefString(data.AvatarPath),
		PostIDs:      postIDs,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		Username:     data.Username,
		Age:          data.Age,
		PasswordHash: data.PasswordHash,
		AvatarPath:   nullableString(data.AvatarPath),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
