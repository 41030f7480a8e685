package main

import (
	"context"
	"log/slog"

	"postboard/config"
	"postboard/internal/domain/lifecycle"
	logs "postboard/internal/infra/log"
	"postboard/internal/infra/persistence"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema of the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				migrator persistence.Migrator
				logger   *slog.Logger
			)

			app := fx.New(
				fx.NopLogger,
				fx.Provide(
					config.New,
					logs.New,
				),
				// The explicit run below replaces the start hook.
				fx.Decorate(func(cfg *config.Config) *config.Config {
					cfg.Storage.AutoMigrate = false

					return cfg
				}),
				persistence.Module,
				fx.Populate(&migrator, &logger),
			)
			if err := app.Err(); err != nil {
				return errors.WithStack(err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lifecycle.DefaultTimeout)
			defer cancel()

			if err := app.Start(ctx); err != nil {
				return errors.WithStack(err)
			}
			defer func() {
				if err := app.Stop(context.Background()); err != nil {
					logger.Error("Failed to stop", slog.Any("error", err))
				}
			}()

			if err := migrator.Migrate(ctx); err != nil {
				return errors.Wrap(err, "migrate")
			}

			logger.Info("Schema is up to date")

			return nil
		},
	}
}
