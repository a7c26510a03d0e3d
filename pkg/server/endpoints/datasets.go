package endpoints

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/response"
)

// DatasetSummary is the list form of a dataset.
type DatasetSummary struct {
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Rows        int              `json:"rows"`
	Label       string           `json:"label,omitempty"`
	Columns     []dataset.Column `json:"columns"`
}

// DatasetDetail adds source attribution and numeric column statistics.
type DatasetDetail struct {
	DatasetSummary
	Source string            `json:"source,omitempty"`
	Stats  []dataset.Summary `json:"stats"`
}

// DatasetsResponse lists every known dataset plus the one the
// dashboard should open with.
type DatasetsResponse struct {
	Datasets []DatasetSummary `json:"datasets"`
	Default  string           `json:"default"`
}

// RecordsResponse is one page of dataset rows.
type RecordsResponse struct {
	Records []map[string]any `json:"records"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// RegisterDatasetsEndpoints registers the dataset browsing endpoints
func RegisterDatasetsEndpoints(s *server.Server) {
	registry := s.Datasets

	datasetsRouter := s.Router.PathPrefix("/v1/datasets").Subrouter()

	// GET /v1/datasets - list datasets with column metadata
	datasetsRouter.HandleFunc("", handleListDatasets(registry)).Methods("GET")

	// GET /v1/datasets/{name} - one dataset with numeric summaries
	datasetsRouter.HandleFunc("/{name}", handleGetDataset(registry)).Methods("GET")

	// GET /v1/datasets/{name}/records - page through rows
	datasetsRouter.HandleFunc("/{name}/records", handleDatasetRecords(registry, s.Config.PageSize)).Methods("GET")
}

func handleListDatasets(registry *dataset.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := registry.List()
		summaries := make([]DatasetSummary, 0, len(list))
		for _, ds := range list {
			summaries = append(summaries, summarize(ds))
		}

		response.OK(w, DatasetsResponse{
			Datasets: summaries,
			Default:  registry.DefaultName(),
		})
	}
}

func handleGetDataset(registry *dataset.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok := lookupDataset(w, r, registry)
		if !ok {
			return
		}

		response.OK(w, DatasetDetail{
			DatasetSummary: summarize(ds),
			Source:         ds.Source,
			Stats:          ds.Summaries(),
		})
	}
}

func handleDatasetRecords(registry *dataset.Registry, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok := lookupDataset(w, r, registry)
		if !ok {
			return
		}

		limit, offset, err := parsePage(r, defaultLimit)
		if err != nil {
			response.BadRequest(w, "invalid_parameter", err.Error(), "")
			return
		}

		response.OK(w, RecordsResponse{
			Records: ds.Records(offset, limit),
			Total:   ds.Rows(),
			Limit:   limit,
			Offset:  offset,
		})
	}
}

func summarize(ds *dataset.Dataset) DatasetSummary {
	return DatasetSummary{
		Name:        ds.Name,
		Title:       ds.Title,
		Description: ds.Description,
		Rows:        ds.Rows(),
		Label:       ds.Label,
		Columns:     ds.Columns(),
	}
}

// lookupDataset resolves the {name} path variable, answering the 404
// envelope itself (with a "did you mean" suggestion) when no dataset
// matches.
func lookupDataset(w http.ResponseWriter, r *http.Request, registry *dataset.Registry) (*dataset.Dataset, bool) {
	name := mux.Vars(r)["name"]
	ds, err := registry.Get(name)
	if err != nil {
		response.NotFound(w, "dataset_not_found", fmt.Sprintf("dataset not found: %q", name), registry.Suggest(name))
		return nil, false
	}
	return ds, true
}
