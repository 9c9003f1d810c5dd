// Package version provides build version information for tcore.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set via ldflags at build time.
var (
	// Version is the tcore build version. It participates in every cache
	// key: bumping it invalidates all previously cached transformations,
	// since a new build may change how any transformer behaves.
	Version = "dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the build version (set via ldflags).
	Version string

	// GitCommit is the git commit hash.
	GitCommit string

	// BuildDate is the build timestamp.
	BuildDate string

	// GoVersion is the Go version used to build.
	GoVersion string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a formatted version string.
func (i Info) String() string {
	return fmt.Sprintf("tcore %s (%s) built %s with %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// CacheKeyVersion returns the version string used as the `bundlerVersion`
// field of every cache key. Isolated into its own accessor so callers that
// only need the cache-key input don't have to build a full Info.
func CacheKeyVersion() string {
	return Version
}
