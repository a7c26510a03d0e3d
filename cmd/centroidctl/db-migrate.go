package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centroidhq/centroid/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

Migrations are embedded in the binary and applied against the configured
database URL. An up-to-date database is not an error.

Example:
  centroidctl db migrate
  centroidctl db migrate --config ./centroid.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		version, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			fail("Migration failed: %v", err)
		}
		fmt.Printf("Database is at version %d\n", version)
	},
}

// dbStatusCmd represents the db status command
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current migration version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		version, dirty, err := db.MigrationVersion(cfg.DatabaseURL)
		if errors.Is(err, db.ErrNoMigrations) {
			fmt.Println("No migrations have been applied yet")
			return
		}
		if err != nil {
			fail("Failed to get migration status: %v", err)
		}

		fmt.Printf("Current version: %d\n", version)
		if dirty {
			fmt.Println("Warning: database is in a dirty state")
		}
	},
}

// dbDownCmd represents the db down command
var dbDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back database migrations",
	Long: `Roll back database migrations.

Example:
  centroidctl db down            # roll back 1 migration
  centroidctl db down --steps 2  # roll back 2 migrations`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail("Invalid configuration: %v", err)
		}

		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			fail("--steps must be at least 1, got %d", steps)
		}

		version, err := db.MigrateDown(cfg.DatabaseURL, steps)
		if err != nil {
			fail("Rollback failed: %v", err)
		}
		if version == 0 {
			fmt.Println("Rolled back all migrations")
			return
		}
		fmt.Printf("Rolled back to version %d\n", version)
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbDownCmd)

	dbDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")
}
