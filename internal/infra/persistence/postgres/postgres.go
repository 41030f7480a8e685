package postgres

import (
	"context"
	"log/slog"

	"postboard/config"
	"postboard/internal/domain/lifecycle"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the PostgreSQL primary (and replicas) through go-lib and ties the pool to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config is required for the postgres storage driver")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Multi-statement writes open their own transaction inside the repository.
		SkipDefaultTransaction: true,
		Logger:                 newGormLogger(params.Logger, params.Config),
	})

	return manage(params, db, "Postgres")
}

// manage pings the pool on start, watches it while running and closes it on stop.
func manage(params Params, db *gorm.DB, name string) (*gorm.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s sql.DB", name)
	}

	monitor := newPoolMonitor(params.Logger, sqlDB, name)
	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", name)
			}

			go monitor.run(monitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return errors.Wrapf(sqlDB.Close(), "failed to close %s", name)
		},
	})

	return db, nil
}
