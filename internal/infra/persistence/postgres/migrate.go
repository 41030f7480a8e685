package postgres

import (
	"context"

	"postboard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrator creates or updates the relational schema.
type Migrator struct {
	db *gorm.DB
}

// NewMigrator is the constructor for Migrator.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db}
}

// Migrate runs GORM AutoMigrate for users, posts and post_likes.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.PostModel{},
		&model.PostLikeModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
