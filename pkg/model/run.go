package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run records one clustering request and its outcome. List-valued
// fields (features, centroids, sizes) are stored as JSON text so the
// schema stays portable between SQLite and Postgres.
type Run struct {
	ID            string `gorm:"primaryKey"`
	Dataset       string `gorm:"index:idx_runs_dataset_created_at,priority:1"`
	XColumn       string `gorm:"column:x_column"`
	YColumn       string `gorm:"column:y_column"`
	Features      string
	Clusters      int
	Seed          int64
	MaxIterations int
	Iterations    int
	Converged     bool
	Inertia       float64
	Silhouette    *float64
	Centroids     string
	Sizes         string
	DurationMS    int64     `gorm:"column:duration_ms"`
	CreatedAt     time.Time `gorm:"index:idx_runs_dataset_created_at,priority:2"`
}

func (r Run) TableName() string {
	return "runs"
}

func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}

// The list accessors below parse JSON written by their setters, so a
// decode failure means a hand-edited row; they return nil in that case.

func (r *Run) FeatureList() []string {
	var out []string
	_ = json.Unmarshal([]byte(r.Features), &out)
	return out
}

func (r *Run) SetFeatureList(features []string) error {
	data, err := json.Marshal(features)
	if err != nil {
		return err
	}
	r.Features = string(data)
	return nil
}

func (r *Run) CentroidRows() [][]float64 {
	var out [][]float64
	_ = json.Unmarshal([]byte(r.Centroids), &out)
	return out
}

func (r *Run) SetCentroidRows(centroids [][]float64) error {
	data, err := json.Marshal(centroids)
	if err != nil {
		return err
	}
	r.Centroids = string(data)
	return nil
}

func (r *Run) SizeList() []int {
	var out []int
	_ = json.Unmarshal([]byte(r.Sizes), &out)
	return out
}

func (r *Run) SetSizeList(sizes []int) error {
	data, err := json.Marshal(sizes)
	if err != nil {
		return err
	}
	r.Sizes = string(data)
	return nil
}
