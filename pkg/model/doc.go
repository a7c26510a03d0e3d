// Package model defines the database models for Centroid.
//
// This package contains GORM models that map to the Centroid database
// schema. The schema is portable between SQLite and PostgreSQL.
//
// # Core Models
//
//   - Run: a saved clustering run with its parameters and results
package model
