package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/kmeans"
	"github.com/centroidhq/centroid/pkg/logging"
	"github.com/centroidhq/centroid/pkg/model"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/response"
	"github.com/centroidhq/centroid/pkg/server/store"
)

// silhouetteMaxRows bounds the O(n²) silhouette pass; past this the
// score is omitted instead of stalling the request.
const silhouetteMaxRows = 5000

// ClusterRequest is the body of POST /v1/datasets/{name}/cluster.
type ClusterRequest struct {
	X             string   `json:"x"`
	Y             string   `json:"y"`
	K             int      `json:"k"`
	Features      []string `json:"features"`
	Seed          int64    `json:"seed"`
	MaxIterations int      `json:"max_iterations"`
	Save          *bool    `json:"save"`
}

// ClusterResponse carries the fitted run plus the plotted columns.
// Centroids here are the [x, y] projections for the scatter plot; the
// full-dimensional ones live on the run.
type ClusterResponse struct {
	Run       RunView     `json:"run"`
	X         []float64   `json:"x"`
	Y         []float64   `json:"y"`
	Labels    []int       `json:"labels"`
	Centroids [][]float64 `json:"centroids"`
}

// RegisterClusterEndpoints registers the clustering endpoint
func RegisterClusterEndpoints(s *server.Server) {
	s.Router.HandleFunc("/v1/datasets/{name}/cluster", handleCluster(s.Datasets, s.Runs)).Methods("POST")
}

func handleCluster(registry *dataset.Registry, runs store.RunsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok := lookupDataset(w, r, registry)
		if !ok {
			return
		}

		var req ClusterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid_request", "request body is not valid JSON", "")
			return
		}
		if req.X == "" || req.Y == "" {
			response.BadRequest(w, "missing_parameter", "x and y are required", "")
			return
		}
		if req.K < 1 {
			response.BadRequest(w, "invalid_parameter", "k must be at least 1", "")
			return
		}

		xs, err := ds.Values(req.X)
		if err != nil {
			columnError(w, ds, req.X, err)
			return
		}
		ys, err := ds.Values(req.Y)
		if err != nil {
			columnError(w, ds, req.Y, err)
			return
		}

		features := req.Features
		if len(features) == 0 {
			features = []string{req.X, req.Y}
		}
		for _, name := range features {
			if _, err := ds.Values(name); err != nil {
				columnError(w, ds, name, err)
				return
			}
		}

		X, err := ds.Matrix(features)
		if err != nil {
			response.Internal(w, err)
			return
		}

		started := time.Now()
		result, err := kmeans.Fit(X, kmeans.Config{
			K:             req.K,
			MaxIterations: req.MaxIterations,
			Seed:          req.Seed,
		})
		if err != nil {
			response.BadRequest(w, "invalid_data", err.Error(), "")
			return
		}

		var silhouette *float64
		if n, _ := X.Dims(); result.K >= 2 && result.K < n && n <= silhouetteMaxRows {
			if score, err := kmeans.Silhouette(X, result.Labels); err == nil {
				silhouette = &score
			}
		}
		elapsed := time.Since(started)

		maxIterations := req.MaxIterations
		if maxIterations <= 0 {
			maxIterations = kmeans.DefaultMaxIterations
		}

		run := &model.Run{
			Dataset:       ds.Name,
			XColumn:       req.X,
			YColumn:       req.Y,
			Clusters:      result.K,
			Seed:          result.Seed,
			MaxIterations: maxIterations,
			Iterations:    result.Iterations,
			Converged:     result.Converged,
			Inertia:       result.Inertia,
			Silhouette:    silhouette,
			DurationMS:    elapsed.Milliseconds(),
		}
		// Marshals of plain slices cannot fail.
		_ = run.SetFeatureList(features)
		_ = run.SetCentroidRows(result.Centroids)
		_ = run.SetSizeList(kmeans.Sizes(result.Labels, result.K))

		save := req.Save == nil || *req.Save
		if save {
			if err := runs.CreateRun(run); err != nil {
				logging.FromContext(r.Context()).Error().Err(err).Msg("failed to save run")
				response.Internal(w, err)
				return
			}
		}

		resp := ClusterResponse{
			Run:       runView(run),
			X:         xs,
			Y:         ys,
			Labels:    result.Labels,
			Centroids: projectCentroids(result.Centroids, features, req.X, req.Y),
		}
		if save {
			response.Created(w, resp)
			return
		}
		response.OK(w, resp)
	}
}

// projectCentroids reduces full-dimensional centroids to their [x, y]
// coordinates for plotting. When either plotted column was not among
// the clustered features there is no projection, and the dashboard
// skips the centroid trace.
func projectCentroids(centroids [][]float64, features []string, x, y string) [][]float64 {
	xi, yi := -1, -1
	for i, name := range features {
		if name == x {
			xi = i
		}
		if name == y {
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		return nil
	}

	out := make([][]float64, len(centroids))
	for i, c := range centroids {
		out[i] = []float64{c[xi], c[yi]}
	}
	return out
}

// columnError maps a column lookup failure onto the error envelope,
// attaching a close-match suggestion for unknown names.
func columnError(w http.ResponseWriter, ds *dataset.Dataset, name string, err error) {
	if errors.Is(err, dataset.ErrColumnNotFound) {
		response.BadRequest(w, "column_not_found", err.Error(), ds.SuggestColumn(name))
		return
	}
	if errors.Is(err, dataset.ErrColumnNotNumeric) {
		response.BadRequest(w, "column_not_numeric", err.Error(), "")
		return
	}
	response.BadRequest(w, "invalid_parameter", err.Error(), "")
}
