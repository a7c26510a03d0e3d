// Package config provides configuration management for centroid.
//
// Values are resolved in order from built-in defaults, an optional YAML
// file (centroid.yml, or the path given via --config / CENTROID_CONFIG)
// and CENTROID_* environment variables. The origin of every value is
// tracked so `centroidctl configuration show` can report it.
//
// # Key Configuration Options
//
//   - CENTROID_BIND_ADDRESS: server listen interface (default 127.0.0.1)
//   - CENTROID_PORT: server listen port (default 8050)
//   - CENTROID_DATABASE_URL: run store backend (SQLite path or postgres:// URL)
//   - CENTROID_DATASETS_DIR: extra CSV datasets to serve
//   - CENTROID_LOG_LEVEL: logging verbosity
package config
