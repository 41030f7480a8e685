package mongodb

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "postboard/internal/delivery/context"
	"postboard/internal/domain/entity"
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// toggleLikeAttempts bounds retries when a concurrent toggle by the same user
// flips membership between the two conditional updates.
const toggleLikeAttempts = 3

// postRepository implements the repository.PostRepository interface.
type postRepository struct {
	users *mongo.Collection
	posts *mongo.Collection

	// detach removes a deleted post from its owner's postIds.
	detach func(ctx context.Context, post *entity.Post) error
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *mongo.Database) repository.PostRepository {
	repo := &postRepository{
		users: db.Collection(usersCollection),
		posts: db.Collection(postsCollection),
	}
	repo.detach = repo.pullFromOwner

	return repo
}

// FindByID retrieves a post with its like set.
func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var doc postDocument
	if err := repo.posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post")
	}

	return toPostDomain(&doc), nil
}

// FindByOwner retrieves a user's posts in creation order.
func (repo *postRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error) {
	cursor, err := repo.posts.Find(ctx,
		bson.M{"ownerId": ownerID.String()},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find posts by owner")
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode posts")
	}

	posts := make([]*entity.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, toPostDomain(&docs[i]))
	}

	return posts, nil
}

// Create inserts the post and pushes its id onto the owner's postIds.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return errors.Wrap(err, "failed to generate post id")
		}
		post.ID = id
	}
	post.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if post.LikedBy == nil {
		post.LikedBy = []uuid.UUID{}
	}

	if _, err := repo.posts.InsertOne(ctx, fromPostDomain(post)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	result, err := repo.users.UpdateOne(ctx,
		bson.M{"_id": post.OwnerID.String()},
		bson.M{"$push": bson.M{"postIds": post.ID.String()}},
	)
	if err == nil && result.MatchedCount == 0 {
		err = repository.ErrUserNotFound
	}
	if err != nil {
		// Roll back the orphan post.
		_, _ = repo.posts.DeleteOne(ctx, bson.M{"_id": post.ID.String()})
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append post to owner")
	}

	return nil
}

// Update writes title, content and image path.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	set := bson.M{"title": post.Title, "content": post.Content}
	update := bson.M{"$set": set}
	if post.ImagePath != "" {
		set["imagePath"] = post.ImagePath
	} else {
		update["$unset"] = bson.M{"imagePath": ""}
	}

	result, err := repo.posts.UpdateOne(ctx, bson.M{"_id": post.ID.String()}, update)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update post")
	}

	if result.MatchedCount == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Delete removes the post and pulls its id from the owner's postIds. The two
// writes are not atomic: once the post is gone the delete has happened, so a
// failed pull is only logged. The dangling id stays in postIds; profile pages
// list posts by owner, so the deleted post is never shown.
func (repo *postRepository) Delete(ctx context.Context, post *entity.Post) error {
	result, err := repo.posts.DeleteOne(ctx, bson.M{"_id": post.ID.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete post")
	}

	if result.DeletedCount == 0 {
		return repository.ErrPostNotFound
	}

	if err := repo.detach(ctx, post); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, nil).Warn("Failed to detach deleted post from owner",
			slog.String("post_id", post.ID.String()),
			slog.String("owner_id", post.OwnerID.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

func (repo *postRepository) pullFromOwner(ctx context.Context, post *entity.Post) error {
	_, err := repo.users.UpdateOne(ctx,
		bson.M{"_id": post.OwnerID.String()},
		bson.M{"$pull": bson.M{"postIds": post.ID.String()}},
	)

	return errors.WithStack(err)
}

// ToggleLike adds the user when absent and removes it when present. Each branch is
// a single conditional update, so concurrent toggles by different users never lose writes.
func (repo *postRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	pid, uid := postID.String(), userID.String()

	for range toggleLikeAttempts {
		added, err := repo.posts.UpdateOne(ctx,
			bson.M{"_id": pid, "likedBy": bson.M{"$ne": uid}},
			bson.M{"$addToSet": bson.M{"likedBy": uid}},
		)
		if err != nil {
			return false, domainerrors.NewDatabaseExecuteError(err, "failed to add like")
		}
		if added.ModifiedCount > 0 {
			return true, nil
		}

		removed, err := repo.posts.UpdateOne(ctx,
			bson.M{"_id": pid, "likedBy": uid},
			bson.M{"$pull": bson.M{"likedBy": uid}},
		)
		if err != nil {
			return false, domainerrors.NewDatabaseExecuteError(err, "failed to remove like")
		}
		if removed.ModifiedCount > 0 {
			return false, nil
		}

		count, err := repo.posts.CountDocuments(ctx, bson.M{"_id": pid}, options.Count().SetLimit(1))
		if err != nil {
			return false, domainerrors.NewDatabaseExecuteError(err, "failed to check post")
		}
		if count == 0 {
			return false, repository.ErrPostNotFound
		}
	}

	return false, domainerrors.NewDatabaseExecuteError(
		errors.Errorf("like on post %s kept changing under concurrent toggles", pid),
		"failed to toggle like",
	)
}
