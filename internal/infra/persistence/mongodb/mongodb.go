// Package mongodb implements the persistence layer on MongoDB. Users keep an
// embedded postIds array and posts an embedded likedBy array, both maintained
// with atomic array operators.
package mongodb

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"postboard/config"
	"postboard/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

const (
	usersCollection = "users"
	postsCollection = "posts"

	defaultDatabase       = "postboard"
	defaultConnectTimeout = 10 * time.Second
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB and ties the client to the fx lifecycle.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil || strings.TrimSpace(cfg.URI) == "" {
		return nil, errors.New("mongo.uri is required for the mongo storage driver")
	}

	database := cfg.Database
	if database == "" {
		database = defaultDatabase
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if params.Logger != nil {
				params.Logger.InfoContext(ctx, "Connected to MongoDB", slog.String("database", database))
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client.Database(database), nil
}

// Migrator creates the indexes the repositories rely on.
type Migrator struct {
	db *mongo.Database
}

// NewMigrator is the constructor for Migrator.
func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{db: db}
}

// Migrate ensures a unique email index and an owner/creation index on posts.
func (m *Migrator) Migrate(ctx context.Context) error {
	if _, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
	}); err != nil {
		return errors.Wrap(err, "failed to create users email index")
	}

	if _, err := m.db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("idx_posts_owner_created"),
	}); err != nil {
		return errors.Wrap(err, "failed to create posts owner index")
	}

	return nil
}
