package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/centroidhq/centroid/pkg/model"
	"github.com/centroidhq/centroid/pkg/server/store"
)

// Ensure RunsStore implements store.RunsStore
var _ store.RunsStore = (*RunsStore)(nil)

// RunsStore provides run history operations using GORM
type RunsStore struct {
	db *gorm.DB
}

// NewRunsStore creates a new RunsStore
func NewRunsStore(db *gorm.DB) *RunsStore {
	return &RunsStore{db: db}
}

// CreateRun persists a new clustering run
func (s *RunsStore) CreateRun(run *model.Run) error {
	return s.db.Create(run).Error
}

// FindRun retrieves a run by ID
func (s *RunsStore) FindRun(id string) (*model.Run, error) {
	var run model.Run
	tx := s.db.Where("id = ?", id).First(&run)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrRunNotFound
		}
		return nil, tx.Error
	}
	return &run, nil
}

// ListRuns returns runs newest first, plus the total count matching
// the filter before paging
func (s *RunsStore) ListRuns(filter store.RunFilter) ([]model.Run, int64, error) {
	var total int64
	count := s.db.Model(&model.Run{})
	if filter.Dataset != "" {
		count = count.Where("dataset = ?", filter.Dataset)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.Order("created_at DESC")
	if filter.Dataset != "" {
		query = query.Where("dataset = ?", filter.Dataset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var runs []model.Run
	if err := query.Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

// DeleteRun removes a run by ID
func (s *RunsStore) DeleteRun(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.Run{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrRunNotFound
	}
	return nil
}
