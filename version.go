package kwpic

import "runtime"

// Version is the semantic version of the kwpic library.
const Version = "0.3.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time via -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/kwpic.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/kwpic.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
