// Command centroidctl runs the centroid clustering workshop server and
// its companion terminal tools.
//
// # Quick Start
//
//	# Start the dashboard (creates centroid.db and applies migrations)
//	centroidctl server
//
//	# Cluster the iris dataset from the terminal
//	centroidctl cluster iris --x sepal_length --y sepal_width -k 3
//
//	# Inspect saved runs
//	centroidctl runs list
//
// # Configuration
//
// Settings come from defaults, an optional centroid.yml file and
// CENTROID_* environment variables, in that order. Use
// "centroidctl configuration show" to see every attribute and where its
// value came from.
//
// For the full workshop guide, start the server and open
// http://127.0.0.1:8050/guide, or read it in the terminal with
// "centroidctl guide list".
package main
