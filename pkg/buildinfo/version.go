// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/hovercard/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/hovercard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/hovercard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"

	"github.com/matzehuels/hovercard/pkg/integrations"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent returns the User-Agent sent to provider APIs for this build.
// Development builds use [integrations.DefaultUserAgent].
func UserAgent() string {
	if Version == "dev" {
		return integrations.DefaultUserAgent
	}
	return "hovercard/" + Version + " (+https://github.com/matzehuels/hovercard)"
}
