package endpoints

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/centroidhq/centroid/pkg/config"
	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/guide"
	"github.com/centroidhq/centroid/pkg/model"
	"github.com/centroidhq/centroid/pkg/server"
)

// runColumns matches the runs table in column order.
var runColumns = []string{
	"id", "dataset", "x_column", "y_column", "features", "clusters",
	"seed", "max_iterations", "iterations", "converged", "inertia",
	"silhouette", "centroids", "sizes", "duration_ms", "created_at",
}

// MockServer bundles a fully registered server with a mocked database
// for unit testing. The datasets and guide are the real embedded ones;
// only the run store is mocked.
type MockServer struct {
	Server *server.Server
	Mock   sqlmock.Sqlmock

	db *sql.DB
}

// NewMockServer creates a mock server with all endpoints registered
func NewMockServer() (*MockServer, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = mockDB.Close()
		return nil, err
	}

	log := zerolog.Nop()
	registry, err := dataset.NewRegistry(log)
	if err != nil {
		_ = mockDB.Close()
		return nil, err
	}

	g, err := guide.Load()
	if err != nil {
		_ = mockDB.Close()
		return nil, err
	}

	cfg := &config.Config{
		BindAddress: "127.0.0.1",
		Port:        0,
		PageSize:    10,
	}

	s := server.NewServer(cfg, log, gormDB, registry, g)
	RegisterAll(s)

	return &MockServer{Server: s, Mock: mock, db: mockDB}, nil
}

// Close closes the mock database
func (m *MockServer) Close() error {
	return m.db.Close()
}

// ExpectHealthCheck sets up expectation for the connectivity probe
func (m *MockServer) ExpectHealthCheck(err error) {
	e := m.Mock.ExpectExec(`SELECT 1`)
	if err != nil {
		e.WillReturnError(err)
		return
	}
	e.WillReturnResult(sqlmock.NewResult(0, 0))
}

// ExpectRunInsert sets up expectation for a run insert
func (m *MockServer) ExpectRunInsert() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`INSERT INTO "runs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.Mock.ExpectCommit()
}

// ExpectRunQuery sets up expectation for a single run lookup
func (m *MockServer) ExpectRunQuery(run *model.Run) {
	m.Mock.ExpectQuery(`SELECT \* FROM "runs" WHERE id = \$1`).
		WithArgs(run.ID).
		WillReturnRows(runRows(run))
}

// ExpectRunNotFound sets up expectation for a missing run
func (m *MockServer) ExpectRunNotFound(id string) {
	m.Mock.ExpectQuery(`SELECT \* FROM "runs" WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(runColumns))
}

// ExpectRunsPage sets up expectations for a run listing
func (m *MockServer) ExpectRunsPage(total int64, runs ...*model.Run) {
	m.Mock.ExpectQuery(`SELECT count\(.+\) FROM "runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(total))
	m.Mock.ExpectQuery(`SELECT \* FROM "runs"`).
		WillReturnRows(runRows(runs...))
}

// ExpectRunDelete sets up expectation for a run delete affecting rows rows
func (m *MockServer) ExpectRunDelete(id string, rows int64) {
	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`DELETE FROM "runs" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, rows))
	m.Mock.ExpectCommit()
}

// VerifyExpectations checks that all expectations were met
func (m *MockServer) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}

func runRows(runs ...*model.Run) *sqlmock.Rows {
	rows := sqlmock.NewRows(runColumns)
	for _, run := range runs {
		rows.AddRow(
			run.ID, run.Dataset, run.XColumn, run.YColumn, run.Features,
			run.Clusters, run.Seed, run.MaxIterations, run.Iterations,
			run.Converged, run.Inertia, run.Silhouette, run.Centroids,
			run.Sizes, run.DurationMS, run.CreatedAt,
		)
	}
	return rows
}
