package endpoints

import (
	"fmt"
	"net/http"

	"github.com/centroidhq/centroid/pkg/dataset"
	"github.com/centroidhq/centroid/pkg/logging"
	"github.com/centroidhq/centroid/pkg/server"
	"github.com/centroidhq/centroid/pkg/server/response"
	"github.com/centroidhq/centroid/pkg/server/store"
	"github.com/centroidhq/centroid/pkg/version"
)

// StatusResponse reports server health.
type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Datasets int    `json:"datasets"`
}

// RegisterStatusEndpoints registers the status endpoint
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/v1/status", handleStatus(s.Health, s.Datasets)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, registry *dataset.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := StatusResponse{
			Status:   "ok",
			Version:  version.Version,
			Database: "ok",
			Datasets: len(registry.Names()),
		}
		if err := healthStore.CheckConnectivity(); err != nil {
			logging.FromContext(r.Context()).Warn().Err(err).Msg("database connectivity check failed")
			status.Status = "degraded"
			status.Database = "unavailable"
		}

		// Plain text for humans and shell scripts
		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintf(w, "%-10s %s\n", "status", status.Status)
			fmt.Fprintf(w, "%-10s %s\n", "version", status.Version)
			fmt.Fprintf(w, "%-10s %s\n", "database", status.Database)
			fmt.Fprintf(w, "%-10s %d\n", "datasets", status.Datasets)
			return
		}

		response.OK(w, status)
	}
}
