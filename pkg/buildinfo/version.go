// Package buildinfo reports which ribbonpack build is running.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/ribbonpack/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/ribbonpack/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/ribbonpack/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped binaries fall back to the module version and VCS settings the
// Go toolchain embeds, so `go install` builds still report a commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Set with -ldflags -X.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fill sync.Once

func resolve() {
	fill.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		applyBuildInfo(info)
	})
}

func applyBuildInfo(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	vcs := make(map[string]string)
	for _, s := range info.Settings {
		vcs[s.Key] = s.Value
	}
	if rev := vcs["vcs.revision"]; rev != "" && Commit == "none" {
		Commit = rev
		if vcs["vcs.modified"] == "true" {
			Commit += "-dirty"
		}
	}
	if t := vcs["vcs.time"]; t != "" && Date == "unknown" {
		Date = t
	}
}

// Current returns the version, resolving it from the embedded build
// information when it was not stamped.
func Current() string {
	resolve()
	return Version
}

// String formats the version, commit and build date on three lines.
func String() string {
	resolve()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
