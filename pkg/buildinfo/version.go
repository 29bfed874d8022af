// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/NCI-Agency/anet-orgchart/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/NCI-Agency/anet-orgchart/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/NCI-Agency/anet-orgchart/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the multi-line version report printed by "orgchart version".
func String() string {
	return fmt.Sprintf("orgchart %s\ncommit: %s\nbuilt:  %s\ngo:     %s %s/%s",
		Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}

// UserAgent is sent with requests to organization sources.
func UserAgent() string {
	return "anet-orgchart/" + Version
}
