package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel mirrors the 'posts' table. A user's post list is the set of rows
// with its owner_id, ordered by created_at.
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_posts_owner_created,priority:1"`
	Title     string    `gorm:"type:varchar(255)"`
	Content   string    `gorm:"type:text"`
	ImagePath *string   `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"index:idx_posts_owner_created,priority:2"`
	UpdatedAt time.Time

	Likes []PostLikeModel `gorm:"foreignKey:PostID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// BeforeCreate assigns a time-ordered ID when the caller did not.
func (m *PostModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// PostLikeModel mirrors the 'post_likes' table. The composite key keeps a
// post's like set free of duplicates.
type PostLikeModel struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostLikeModel) TableName() string {
	return "post_likes"
}
