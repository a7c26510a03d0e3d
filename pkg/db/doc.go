// Package db provides database connection and migration utilities for
// Centroid.
//
// Run history lives in SQLite by default, with PostgreSQL supported
// for shared deployments. URLs with a postgres:// or postgresql://
// scheme connect to PostgreSQL; anything else is treated as a SQLite
// database path.
//
// # Connection
//
//	database, err := db.Connect(cfg.DatabaseURL, cfg.LogLevel)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Migrations
//
// Schema migrations are embedded in the binary and applied with
// Migrate. The migration SQL is kept portable between SQLite and
// PostgreSQL.
package db
