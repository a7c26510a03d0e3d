package endpoints

import (
	"github.com/centroidhq/centroid/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterDatasetsEndpoints(srv)
	RegisterClusterEndpoints(srv)
	RegisterRunsEndpoints(srv)
	RegisterGuideEndpoints(srv)

	// The dashboard and its assets
	RegisterUIEndpoints(srv)
}
