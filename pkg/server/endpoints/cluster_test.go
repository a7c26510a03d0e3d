package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClusterSavesRun(t *testing.T) {
	m := newMockServer(t)
	m.ExpectRunInsert()

	w := doRequest(t, m, "POST", "/v1/datasets/iris/cluster", map[string]any{
		"x":    "sepal_length",
		"y":    "sepal_width",
		"k":    3,
		"seed": 7,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var data ClusterResponse
	decodeData(t, w, &data)

	if len(data.X) != 150 || len(data.Y) != 150 || len(data.Labels) != 150 {
		t.Fatalf("expected 150 plotted points, got %d/%d/%d",
			len(data.X), len(data.Y), len(data.Labels))
	}
	for _, label := range data.Labels {
		if label < 0 || label >= 3 {
			t.Fatalf("label %d out of range", label)
		}
	}
	if len(data.Centroids) != 3 {
		t.Fatalf("expected 3 plotted centroids, got %d", len(data.Centroids))
	}
	for _, c := range data.Centroids {
		if len(c) != 2 {
			t.Fatalf("expected 2-dimensional centroid projections, got %v", c)
		}
	}

	run := data.Run
	if len(run.ID) != 36 {
		t.Errorf("expected a UUID run id, got %q", run.ID)
	}
	if run.Dataset != "iris" || run.K != 3 || run.Seed != 7 {
		t.Errorf("unexpected run identity: %+v", run)
	}
	if got := strings.Join(run.Features, ","); got != "sepal_length,sepal_width" {
		t.Errorf("expected features to default to the plotted columns, got %q", got)
	}
	if run.Inertia <= 0 {
		t.Errorf("expected positive inertia, got %f", run.Inertia)
	}
	if run.Silhouette == nil {
		t.Error("expected a silhouette score for k=3 on 150 rows")
	}
	if run.CreatedAt == nil {
		t.Error("expected a creation time on a saved run")
	}

	total := 0
	for _, size := range run.Sizes {
		total += size
	}
	if total != 150 {
		t.Errorf("expected cluster sizes to sum to 150, got %d", total)
	}

	if err := m.VerifyExpectations(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestClusterWithoutSaving(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "POST", "/v1/datasets/iris/cluster", map[string]any{
		"x":    "sepal_length",
		"y":    "sepal_width",
		"k":    3,
		"save": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var data ClusterResponse
	decodeData(t, w, &data)

	if data.Run.ID != "" {
		t.Errorf("expected no id on an unsaved run, got %q", data.Run.ID)
	}
	if data.Run.CreatedAt != nil {
		t.Error("expected no creation time on an unsaved run")
	}

	// No insert may have reached the store.
	if err := m.VerifyExpectations(); err != nil {
		t.Errorf("unexpected database traffic: %v", err)
	}
}

func TestClusterInMoreDimensionsThanPlotted(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "POST", "/v1/datasets/iris/cluster", map[string]any{
		"x":        "sepal_length",
		"y":        "sepal_width",
		"k":        3,
		"features": []string{"sepal_length", "sepal_width", "petal_length", "petal_width"},
		"save":     false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var data ClusterResponse
	decodeData(t, w, &data)

	if len(data.Run.Centroids) != 3 || len(data.Run.Centroids[0]) != 4 {
		t.Errorf("expected 3 centroids in 4 dimensions, got %v", data.Run.Centroids)
	}

	// Both plotted columns are features, so projections exist.
	if len(data.Centroids) != 3 || len(data.Centroids[0]) != 2 {
		t.Errorf("expected 2-dimensional centroid projections, got %v", data.Centroids)
	}
}

func TestClusterPlottedColumnsOutsideFeatures(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "POST", "/v1/datasets/iris/cluster", map[string]any{
		"x":        "sepal_length",
		"y":        "sepal_width",
		"k":        2,
		"features": []string{"petal_length", "petal_width"},
		"save":     false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var data ClusterResponse
	decodeData(t, w, &data)

	if data.Centroids != nil {
		t.Errorf("expected no centroid projections when the plot axes were not clustered, got %v", data.Centroids)
	}
}

func TestClusterClampsOversizedK(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "POST", "/v1/datasets/blobs/cluster", map[string]any{
		"x":    "x",
		"y":    "y",
		"k":    500,
		"save": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var data ClusterResponse
	decodeData(t, w, &data)

	if data.Run.K != 90 {
		t.Errorf("expected k clamped to the 90 rows, got %d", data.Run.K)
	}
	if data.Run.Silhouette != nil {
		t.Error("expected no silhouette when every point is its own cluster")
	}
}

func TestClusterValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		status     int
		code       string
		suggestion string
	}{
		{
			name:   "missing y",
			body:   map[string]any{"x": "sepal_length", "k": 3},
			status: http.StatusBadRequest,
			code:   "missing_parameter",
		},
		{
			name:   "k below one",
			body:   map[string]any{"x": "sepal_length", "y": "sepal_width", "k": 0},
			status: http.StatusBadRequest,
			code:   "invalid_parameter",
		},
		{
			name:       "unknown column",
			body:       map[string]any{"x": "sepal_legnth", "y": "sepal_width", "k": 3},
			status:     http.StatusBadRequest,
			code:       "column_not_found",
			suggestion: "sepal_length",
		},
		{
			name:   "categorical column",
			body:   map[string]any{"x": "species", "y": "sepal_width", "k": 3},
			status: http.StatusBadRequest,
			code:   "column_not_numeric",
		},
		{
			name:       "unknown feature",
			body:       map[string]any{"x": "sepal_length", "y": "sepal_width", "k": 3, "features": []string{"sepal_length", "petal_widht"}},
			status:     http.StatusBadRequest,
			code:       "column_not_found",
			suggestion: "petal_width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockServer(t)

			w := doRequest(t, m, "POST", "/v1/datasets/iris/cluster", tt.body)
			e := wantError(t, w, tt.status, tt.code)

			if tt.suggestion != "" && e.Suggestion != tt.suggestion {
				t.Errorf("expected suggestion %q, got %q", tt.suggestion, e.Suggestion)
			}
		})
	}
}

func TestClusterUnknownDataset(t *testing.T) {
	m := newMockServer(t)

	w := doRequest(t, m, "POST", "/v1/datasets/penguins/cluster", map[string]any{
		"x": "x", "y": "y", "k": 3,
	})
	wantError(t, w, http.StatusNotFound, "dataset_not_found")
}

func TestClusterRejectsBadJSON(t *testing.T) {
	m := newMockServer(t)

	req := httptest.NewRequest("POST", "/v1/datasets/iris/cluster", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	m.Server.Router.ServeHTTP(w, req)

	wantError(t, w, http.StatusBadRequest, "invalid_request")
}
