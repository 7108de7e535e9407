package main

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and optional demo data",
	Long:  "Create or promote the account named by ADMIN_EMAIL. With --demo, also add a demo employer and sample job postings.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Insert demo employer and jobs")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := app.NewDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	r := seeder.Runner{Seeders: seeder.Defaults(cfg.Admin, seedDemo), Logger: log.Named("seed")}
	return r.Run(ctx, db)
}
