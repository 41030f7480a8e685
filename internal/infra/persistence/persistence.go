// Package persistence picks the store named by storage.driver and exposes its repositories.
package persistence

import (
	"context"
	"log/slog"

	"postboard/config"
	"postboard/internal/domain/lifecycle"
	"postboard/internal/domain/repository"
	"postboard/internal/infra/persistence/mongodb"
	"postboard/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Migrator creates or updates the schema of the selected store.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the fx result carrying the repositories of the selected store.
type Repositories struct {
	fx.Out

	Users    repository.UserRepository
	Posts    repository.PostRepository
	Migrator Migrator
}

// Module wires the selected store into the fx graph.
var Module = fx.Module("persistence",
	fx.Provide(New),
)

// New opens the store named by storage.driver. With storage.autoMigrate the
// schema is brought up to date after the store's own start hook has run.
func New(params Params) (Repositories, error) {
	var (
		repos Repositories
		err   error
	)

	switch params.Config.Storage.Driver {
	case config.StorageDriverPostgres, config.StorageDriverSQLite:
		repos, err = newRelational(params)
	case config.StorageDriverMongo:
		repos, err = newDocument(params)
	default:
		return Repositories{}, errors.Errorf("unknown storage driver %q", params.Config.Storage.Driver)
	}
	if err != nil {
		return Repositories{}, err
	}

	if params.Config.Storage.AutoMigrate {
		migrator := repos.Migrator
		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return migrator.Migrate(ctx)
			},
		})
	}

	if params.Logger != nil {
		params.Logger.Info("Storage selected", slog.String("driver", params.Config.Storage.Driver))
	}

	return repos, nil
}

func newRelational(params Params) (Repositories, error) {
	dbParams := postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	}

	open := postgres.New
	if params.Config.Storage.Driver == config.StorageDriverSQLite {
		open = postgres.NewSQLite
	}

	db, err := open(dbParams)
	if err != nil {
		return Repositories{}, err
	}

	return Repositories{
		Users:    postgres.NewUserRepository(db),
		Posts:    postgres.NewPostRepository(db),
		Migrator: postgres.NewMigrator(db),
	}, nil
}

func newDocument(params Params) (Repositories, error) {
	db, err := mongodb.New(mongodb.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return Repositories{}, err
	}

	return Repositories{
		Users:    mongodb.NewUserRepository(db),
		Posts:    mongodb.NewPostRepository(db),
		Migrator: mongodb.NewMigrator(db),
	}, nil
}
