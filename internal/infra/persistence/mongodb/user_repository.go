package mongodb

import (
	"context"
	"time"

	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{
		users: db.Collection(usersCollection),
	}
}

// FindByID retrieves a user with its embedded post ids.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

// FindByEmail retrieves a user by its login email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := repo.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	return toUserDomain(&doc), nil
}

// Create inserts a new user; the unique email index rejects duplicates.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := repo.users.InsertOne(ctx, fromUserDomain(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

// UpdateAvatar replaces the avatar path of a user.
func (repo *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarPath string) error {
	result, err := repo.users.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"avatarPath": avatarPath, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update avatar")
	}

	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
