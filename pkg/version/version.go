// Package version exposes build metadata for the palette binary.
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	// Version is set via ldflags on release builds.
	Version string

	Revision  = getRevision()
	GoVersion = runtime.Version()
)

// GetVersion returns the release version, falling back to the VCS revision.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}

		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
