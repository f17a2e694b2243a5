// Package buildinfo carries version information stamped in at link time.
//
//	go build -ldflags "-X github.com/matzehuels/constellation/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/constellation/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/constellation/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/constellation
package buildinfo

import "fmt"

// Values left at their defaults mean the binary was built without ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}

// IsRelease reports whether Version was set at build time.
func IsRelease() bool {
	return Version != "dev" && Version != ""
}
