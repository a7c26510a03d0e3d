// Package server provides the HTTP server for the Centroid API and
// dashboard.
//
// This package implements the core HTTP server. It uses gorilla/mux
// for routing and wraps the router with request ID, logging, panic
// recovery, and compression middleware.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, log, db, datasets, guide)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal().Err(err).Msg("server stopped")
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Config: runtime configuration
//   - Router: HTTP request router
//   - DB: database connection
//   - Datasets: the dataset registry
//   - Guide: the embedded workshop guide
//   - Runs, Health: storage interfaces backed by GORM
//
// # Endpoints
//
// Endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the dashboard, the guide pages, and the JSON API:
//
//   - /v1/status - health and version
//   - /v1/datasets - dataset listing, metadata, and records
//   - /v1/datasets/{name}/cluster - k-means runs
//   - /v1/runs - run history
//   - /guide - the workshop guide
//   - / - the dashboard
package server
