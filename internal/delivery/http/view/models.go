package view

import (
	"time"

	"postboard/internal/domain/entity"

	"github.com/google/uuid"
)

// User is the public view of an account; it never carries the password hash.
type User struct {
	ID         uuid.UUID   `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Username   string      `json:"username"`
	Age        int         `json:"age"`
	AvatarPath string      `json:"avatarPath,omitempty"`
	PostIDs    []uuid.UUID `json:"postIds"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Post is the public view of a post as seen by a given viewer.
type Post struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"ownerId"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	ImagePath    string      `json:"imagePath,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	LikedBy      []uuid.UUID `json:"likedBy"`
	LikeCount    int         `json:"likeCount"`
	LikedByMe    bool        `json:"likedByMe"`
	EditableByMe bool        `json:"editableByMe"`
}

// ProfilePage is the data behind the profile page.
type ProfilePage struct {
	User  User   `json:"user"`
	Posts []Post `json:"posts"`
}

// EditPage is the data behind the edit form.
type EditPage struct {
	Post Post `json:"post"`
}

// NewUser converts a domain user.
func NewUser(u *entity.User) User {
	postIDs := u.PostIDs
	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}

	return User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Username:   u.Username,
		Age:        u.Age,
		AvatarPath: u.AvatarPath,
		PostIDs:    postIDs,
		CreatedAt:  u.CreatedAt,
	}
}

// NewPost converts a domain post for viewerID.
func NewPost(p *entity.Post, viewerID uuid.UUID) Post {
	likedBy := p.LikedBy
	if likedBy == nil {
		likedBy = []uuid.UUID{}
	}

	return Post{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Content:      p.Content,
		ImagePath:    p.ImagePath,
		CreatedAt:    p.CreatedAt,
		LikedBy:      likedBy,
		LikeCount:    p.LikeCount(),
		LikedByMe:    p.IsLikedBy(viewerID),
		EditableByMe: p.IsOwnedBy(viewerID),
	}
}

// NewProfilePage builds the profile page for its owner.
func NewProfilePage(u *entity.User, posts []*entity.Post) ProfilePage {
	page := ProfilePage{
		User:  NewUser(u),
		Posts: make([]Post, 0, len(posts)),
	}
	for _, p := range posts {
		page.Posts = append(page.Posts, NewPost(p, u.ID))
	}

	return page
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("2006-01-02 15:04")
}
