package mongodb

import (
	"time"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// UUIDs are stored in their canonical string form so documents stay readable in the shell.

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	Username     string    `bson:"username"`
	Age          int       `bson:"age"`
	PasswordHash string    `bson:"passwordHash"`
	AvatarPath   string    `bson:"avatarPath,omitempty"`
	PostIDs      []string  `bson:"postIds"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type postDocument struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"ownerId"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	ImagePath string    `bson:"imagePath,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	LikedBy   []string  `bson:"likedBy"`
}

func toUserDomain(doc *userDocument) *entity.User {
	return &entity.User{
		ID:           parseUUID(doc.ID),
		Email:        doc.Email,
		Name:         doc.Name,
		Username:     doc.Username,
		Age:          doc.Age,
		PasswordHash: doc.PasswordHash,
		AvatarPath:   doc.AvatarPath,
		PostIDs:      parseUUIDs(doc.PostIDs),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *userDocument {
	return &userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		Name:         user.Name,
		Username:     user.Username,
		Age:          user.Age,
		PasswordHash: user.PasswordHash,
		AvatarPath:   user.AvatarPath,
		PostIDs:      formatUUIDs(user.PostIDs),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toPostDomain(doc *postDocument) *entity.Post {
	return &entity.Post{
		ID:        parseUUID(doc.ID),
		OwnerID:   parseUUID(doc.OwnerID),
		Title:     doc.Title,
		Content:   doc.Content,
		ImagePath: doc.ImagePath,
		CreatedAt: doc.CreatedAt,
		LikedBy:   parseUUIDs(doc.LikedBy),
	}
}

func fromPostDomain(post *entity.Post) *postDocument {
	return &postDocument{
		ID:        post.ID.String(),
		OwnerID:   post.OwnerID.String(),
		Title:     post.Title,
		Content:   post.Content,
		ImagePath: post.ImagePath,
		CreatedAt: post.CreatedAt,
		LikedBy:   formatUUIDs(post.LikedBy),
	}
}

// parseUUID maps unparsable ids to uuid.Nil; documents are only written by this package.
func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}

func parseUUIDs(values []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if id := parseUUID(v); id != uuid.Nil {
			ids = append(ids, id)
		}
	}

	return ids
}

func formatUUIDs(ids []uuid.UUID) []string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}

	return values
}

func newID() (uuid.UUID, error) {
	return uuid.NewV7()
}
