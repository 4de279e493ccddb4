// Package version carries build metadata set through -ldflags:
//
//	go build -ldflags "-X github.com/smazurov/abiprobe/internal/version.Version=1.2.0 \
//	  -X github.com/smazurov/abiprobe/internal/version.GitCommit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the application version.
	Version = "dev"
	// GitCommit is the full commit hash the binary was built from.
	GitCommit = "unknown"
)

// String returns the version with its short commit, e.g. "1.2.0 (abc1234)".
func String() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

// Tool identifies the build that captured a baseline. The Go toolchain and
// target are part of it because they decide struct layout.
func Tool() string {
	return fmt.Sprintf("abiprobe %s %s %s/%s", String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
