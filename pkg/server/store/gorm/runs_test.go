package gorm

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/centroidhq/centroid/pkg/model"
	"github.com/centroidhq/centroid/pkg/server/store"
)

type RunsSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *RunsStore
}

func (s *RunsSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 s.db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(s.T(), err)

	s.store = NewRunsStore(gormDB)
}

func (s *RunsSuite) TearDownTest() {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
	_ = s.db.Close()
}

func TestRunsStore(t *testing.T) {
	suite.Run(t, new(RunsSuite))
}

func (s *RunsSuite) TestCreateRunAssignsID() {
	run := &model.Run{
		Dataset:       "iris",
		XColumn:       "sepal_length",
		YColumn:       "sepal_width",
		Clusters:      3,
		Seed:          42,
		MaxIterations: 300,
		Iterations:    9,
		Converged:     true,
		Inertia:       37.05,
	}
	require.NoError(s.T(), run.SetFeatureList([]string{"sepal_length", "sepal_width"}))
	require.NoError(s.T(), run.SetCentroidRows([][]float64{{5.0, 3.4}, {6.8, 3.0}, {5.9, 2.7}}))
	require.NoError(s.T(), run.SetSizeList([]int{50, 39, 61}))

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "runs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	require.NoError(s.T(), s.store.CreateRun(run))
	assert.Len(s.T(), run.ID, 36)
	assert.False(s.T(), run.CreatedAt.IsZero())
}

func (s *RunsSuite) TestCreateRunKeepsExistingID() {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	run := &model.Run{ID: "run-fixed", Dataset: "blobs", CreatedAt: created}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "runs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	require.NoError(s.T(), s.store.CreateRun(run))
	assert.Equal(s.T(), "run-fixed", run.ID)
	assert.True(s.T(), run.CreatedAt.Equal(created))
}

func (s *RunsSuite) TestFindRun() {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "dataset", "x_column", "y_column", "features", "clusters",
		"seed", "max_iterations", "iterations", "converged", "inertia",
		"silhouette", "centroids", "sizes", "duration_ms", "created_at",
	}).AddRow(
		"run-1", "iris", "sepal_length", "sepal_width",
		`["sepal_length","sepal_width"]`, 2,
		int64(42), 300, 7, true, 37.05,
		0.55, `[[5.0,3.4],[6.8,3.0]]`, `[62,88]`, int64(12), created,
	)
	s.mock.ExpectQuery(`SELECT .* FROM "runs"`).
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := s.store.FindRun("run-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "run-1", run.ID)
	assert.Equal(s.T(), "iris", run.Dataset)
	assert.Equal(s.T(), 2, run.Clusters)
	assert.Equal(s.T(), []string{"sepal_length", "sepal_width"}, run.FeatureList())
	assert.Equal(s.T(), [][]float64{{5.0, 3.4}, {6.8, 3.0}}, run.CentroidRows())
	assert.Equal(s.T(), []int{62, 88}, run.SizeList())
	require.NotNil(s.T(), run.Silhouette)
	assert.InDelta(s.T(), 0.55, *run.Silhouette, 1e-9)
	assert.True(s.T(), run.CreatedAt.Equal(created))
}

func (s *RunsSuite) TestFindRunNullSilhouette() {
	rows := sqlmock.NewRows([]string{"id", "dataset", "silhouette"}).
		AddRow("run-1", "blobs", nil)
	s.mock.ExpectQuery(`SELECT .* FROM "runs"`).
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := s.store.FindRun("run-1")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), run.Silhouette)
}

func (s *RunsSuite) TestFindRunNotFound() {
	s.mock.ExpectQuery(`SELECT .* FROM "runs"`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.store.FindRun("missing")
	assert.ErrorIs(s.T(), err, store.ErrRunNotFound)
}

func (s *RunsSuite) TestListRunsFiltersAndPages() {
	s.mock.ExpectQuery(`SELECT count\(.+\) FROM "runs" WHERE dataset = \$1`).
		WithArgs("iris").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	listRows := sqlmock.NewRows([]string{"id", "dataset", "created_at"}).
		AddRow("run-4", "iris", time.Date(2025, 6, 1, 12, 4, 0, 0, time.UTC)).
		AddRow("run-3", "iris", time.Date(2025, 6, 1, 12, 3, 0, 0, time.UTC))
	s.mock.ExpectQuery(`SELECT \* FROM "runs" WHERE dataset = \$1 ORDER BY created_at DESC LIMIT 2 OFFSET 1`).
		WithArgs("iris").
		WillReturnRows(listRows)

	runs, total, err := s.store.ListRuns(store.RunFilter{Dataset: "iris", Limit: 2, Offset: 1})
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 5, total)
	require.Len(s.T(), runs, 2)
	assert.Equal(s.T(), "run-4", runs[0].ID)
	assert.Equal(s.T(), "run-3", runs[1].ID)
}

func (s *RunsSuite) TestListRunsUnfiltered() {
	s.mock.ExpectQuery(`SELECT count\(.+\) FROM "runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	listRows := sqlmock.NewRows([]string{"id", "dataset"}).
		AddRow("run-2", "iris").
		AddRow("run-1", "blobs")
	s.mock.ExpectQuery(`SELECT \* FROM "runs" ORDER BY created_at DESC`).
		WillReturnRows(listRows)

	runs, total, err := s.store.ListRuns(store.RunFilter{})
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 2, total)
	require.Len(s.T(), runs, 2)
	assert.Equal(s.T(), "blobs", runs[1].Dataset)
}

func (s *RunsSuite) TestDeleteRun() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "runs"`).
		WithArgs("run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	assert.NoError(s.T(), s.store.DeleteRun("run-1"))
}

func (s *RunsSuite) TestDeleteRunNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "runs"`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	assert.ErrorIs(s.T(), s.store.DeleteRun("missing"), store.ErrRunNotFound)
}
