package store

import (
	"errors"

	"github.com/centroidhq/centroid/pkg/model"
)

// ErrRunNotFound is returned when a run doesn't exist
var ErrRunNotFound = errors.New("run not found")

// RunFilter narrows and pages run listings
type RunFilter struct {
	// Dataset restricts the listing to runs against one dataset.
	// Empty means all datasets.
	Dataset string

	Limit  int
	Offset int
}

// RunsStore provides run history operations
type RunsStore interface {
	// CreateRun persists a new clustering run
	CreateRun(run *model.Run) error

	// FindRun retrieves a run by ID
	// Returns ErrRunNotFound if the run doesn't exist
	FindRun(id string) (*model.Run, error)

	// ListRuns returns runs newest first, plus the total count
	// matching the filter before paging
	ListRuns(filter RunFilter) ([]model.Run, int64, error)

	// DeleteRun removes a run by ID
	// Returns ErrRunNotFound if the run doesn't exist
	DeleteRun(id string) error
}
