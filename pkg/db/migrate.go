package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoMigrations is returned by MigrationVersion when no migrations
// have been applied yet.
var ErrNoMigrations = migrate.ErrNilVersion

// Migrate applies all pending migrations and returns the resulting
// schema version. An up-to-date database is not an error.
func Migrate(databaseURL string) (uint, error) {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return 0, err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration failed: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, err
	}
	return version, nil
}

// MigrateDown rolls back the given number of migrations and returns
// the resulting schema version, zero when nothing remains applied.
func MigrateDown(databaseURL string, steps int) (uint, error) {
	if steps < 1 {
		steps = 1
	}

	m, err := newMigrate(databaseURL)
	if err != nil {
		return 0, err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil {
		return 0, fmt.Errorf("rollback failed: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

// MigrationVersion returns the current schema version and whether the
// database is in a dirty state. Returns ErrNoMigrations when no
// migrations have been applied.
func MigrationVersion(databaseURL string) (uint, bool, error) {
	m, err := newMigrate(databaseURL)
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	return m.Version()
}

// newMigrate builds a migrate instance over the embedded migration
// files, using the database driver the URL calls for.
func newMigrate(databaseURL string) (*migrate.Migrate, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	var (
		driverName string
		driver     database.Driver
	)
	if IsPostgres(databaseURL) {
		conn, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		driver, err = migratepostgres.WithInstance(conn, &migratepostgres.Config{})
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to create migration driver: %w", err)
		}
		driverName = "postgres"
	} else {
		conn, err := sql.Open("sqlite3", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to create migration driver: %w", err)
		}
		driverName = "sqlite3"
	}

	return migrate.NewWithInstance("iofs", source, driverName, driver)
}
