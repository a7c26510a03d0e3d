package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/centroidhq/centroid/pkg/logging"
	"github.com/centroidhq/centroid/pkg/model"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/response"
	"github.com/centroidhq/centroid/pkg/server/store"
)

// RunView is the API shape of a clustering run.
type RunView struct {
	ID            string      `json:"id,omitempty"`
	Dataset       string      `json:"dataset"`
	X             string      `json:"x"`
	Y             string      `json:"y"`
	Features      []string    `json:"features"`
	K             int         `json:"k"`
	Seed          int64       `json:"seed"`
	MaxIterations int         `json:"max_iterations"`
	Iterations    int         `json:"iterations"`
	Converged     bool        `json:"converged"`
	Inertia       float64     `json:"inertia"`
	Silhouette    *float64    `json:"silhouette"`
	Centroids     [][]float64 `json:"centroids"`
	Sizes         []int       `json:"sizes"`
	DurationMS    int64       `json:"duration_ms"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
}

// RunsResponse is one page of saved runs, newest first.
type RunsResponse struct {
	Runs   []RunView `json:"runs"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// RegisterRunsEndpoints registers the run history endpoints
func RegisterRunsEndpoints(s *server.Server) {
	runs := s.Runs

	runsRouter := s.Router.PathPrefix("/v1/runs").Subrouter()

	// GET /v1/runs - list saved runs, optionally filtered by dataset
	runsRouter.HandleFunc("", handleListRuns(runs, s.Config.PageSize)).Methods("GET")

	// GET /v1/runs/{id} - one saved run
	runsRouter.HandleFunc("/{id}", handleGetRun(runs)).Methods("GET")

	// DELETE /v1/runs/{id} - delete a saved run
	runsRouter.HandleFunc("/{id}", handleDeleteRun(runs)).Methods("DELETE")
}

func handleListRuns(runs store.RunsStore, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := parsePage(r, defaultLimit)
		if err != nil {
			response.BadRequest(w, "invalid_parameter", err.Error(), "")
			return
		}

		list, total, err := runs.ListRuns(store.RunFilter{
			Dataset: r.URL.Query().Get("dataset"),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("failed to list runs")
			response.Internal(w, err)
			return
		}

		views := make([]RunView, 0, len(list))
		for i := range list {
			views = append(views, runView(&list[i]))
		}

		response.OK(w, RunsResponse{
			Runs:   views,
			Total:  total,
			Limit:  limit,
			Offset: offset,
		})
	}
}

func handleGetRun(runs store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		run, err := runs.FindRun(id)
		if errors.Is(err, store.ErrRunNotFound) {
			response.NotFound(w, "run_not_found", fmt.Sprintf("run not found: %q", id), "")
			return
		}
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("failed to fetch run")
			response.Internal(w, err)
			return
		}

		response.OK(w, runView(run))
	}
}

func handleDeleteRun(runs store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		err := runs.DeleteRun(id)
		if errors.Is(err, store.ErrRunNotFound) {
			response.NotFound(w, "run_not_found", fmt.Sprintf("run not found: %q", id), "")
			return
		}
		if err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("failed to delete run")
			response.Internal(w, err)
			return
		}

		response.NoContent(w)
	}
}

// runView converts a stored run to its API shape. An unsaved run has
// no id or creation time; both are omitted.
func runView(run *model.Run) RunView {
	view := RunView{
		ID:            run.ID,
		Dataset:       run.Dataset,
		X:             run.XColumn,
		Y:             run.YColumn,
		Features:      run.FeatureList(),
		K:             run.Clusters,
		Seed:          run.Seed,
		MaxIterations: run.MaxIterations,
		Iterations:    run.Iterations,
		Converged:     run.Converged,
		Inertia:       run.Inertia,
		Silhouette:    run.Silhouette,
		Centroids:     run.CentroidRows(),
		Sizes:         run.SizeList(),
		DurationMS:    run.DurationMS,
	}
	if !run.CreatedAt.IsZero() {
		created := run.CreatedAt
		view.CreatedAt = &created
	}
	return view
}
