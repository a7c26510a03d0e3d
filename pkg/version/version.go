// Package version records the build version of Centroid.
package version

// Version is the release version. Override it at build time:
//
//	go build -ldflags "-X github.com/centroidhq/centroid/pkg/version.Version=1.2.3"
var Version = "0.1.0"
