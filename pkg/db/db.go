package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgres reports whether the URL targets PostgreSQL. Anything
// without a postgres scheme is treated as a SQLite database path.
func IsPostgres(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") ||
		strings.HasPrefix(databaseURL, "postgresql://")
}

// Connect establishes a database connection.
func Connect(databaseURL, logLevel string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	// Default to silent query logging unless the log level is debug
	logMode := logger.Silent
	if strings.EqualFold(logLevel, "debug") {
		logMode = logger.Info
	}

	var dialector gorm.Dialector
	if IsPostgres(databaseURL) {
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
