package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 assigned in BeforeCreate
// so the same schema works on PostgreSQL and SQLite.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	Username     string    `gorm:"type:varchar(100)"`
	Age          int
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	AvatarPath   *string `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Posts []PostModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered ID when the caller did not.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}

	generated, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = generated

	return nil
}
