// Package buildinfo holds the version reported by "friendgraph --version"
// and logged by "friendgraph serve" at startup.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/friendgraph/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/friendgraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/friendgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/friendgraph
package buildinfo

import "fmt"

// Build metadata; development builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the root command's --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
