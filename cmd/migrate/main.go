package main

// Run database migrations:
//   go run ./cmd/migrate          # apply pending migrations
//   go run ./cmd/migrate down     # roll back the latest migration
//   go run ./cmd/migrate status   # print migration status

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recruitedge-api/internal/shared/config"
	"recruitedge-api/internal/shared/storage/db"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Apply database migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          withDB(db.RunMigrations),
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  withDB(db.RunMigrations),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE:  withDB(db.RollbackMigration),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE:  withDB(db.MigrationStatus),
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, statusCmd)
}

func withDB(fn func(ctx context.Context, database *sql.DB) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer sqlDB.Close()

		return fn(ctx, sqlDB)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}
