// Package buildinfo carries version information stamped at build time.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/yergin/test-pattern-descriptor/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/yergin/test-pattern-descriptor/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/yergin/test-pattern-descriptor/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Stamped by ldflags; the defaults identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns cobra's --version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
