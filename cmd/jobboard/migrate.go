package main

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	"jobboard/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return migrate(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate(parent context.Context, cfg config.Config, log *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	db, err := app.NewDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
	defer cancel()

	r := migration.Runner{Source: migrations.FS, Logger: log.Named("migration")}
	res, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("migrations complete", zap.Int("applied", len(res.Applied)), zap.Int("skipped", res.Skipped))
	return nil
}
