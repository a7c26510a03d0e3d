// Package store provides storage abstractions for the Centroid server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - RunsStore: clustering run history (create, find, list, delete)
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	runs := gorm.NewRunsStore(db)
//	run, err := runs.FindRun(id)
//	if err != nil {
//	    if errors.Is(err, store.ErrRunNotFound) {
//	        // Handle not found
//	    }
//	}
package store
