// Package version reports the client build. Release builds stamp the
// values with ldflags:
//
//	go build -ldflags="-X github.com/carbonlog/carbon/internal/version.Version=v0.3.0 \
//	                   -X github.com/carbonlog/carbon/internal/version.Commit=abc123"
//
// Local builds fall back to the VCS stamp the toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	// Version is the client release, "dev-YYYYMMDD" for unreleased builds
	Version = ""
	// Commit is the short revision the client was built from
	Commit = ""
)

// Info describes the running build
type Info struct {
	Version   string
	Commit    string
	Dirty     bool
	GoVersion string
}

func init() {
	info := fromBuildInfo(debug.ReadBuildInfo())
	if Version == "" {
		Version = info.Version
	}
	if Commit == "" {
		Commit = info.Commit
	}
}

// fromBuildInfo derives Info from the toolchain's build metadata. Missing
// values become "dev-<today>" and "unknown".
func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	info := Info{GoVersion: runtime.Version()}
	if ok && bi != nil {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}

		var built time.Time
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
				if len(info.Commit) > 7 {
					info.Commit = info.Commit[:7]
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				built, _ = time.Parse(time.RFC3339, s.Value)
			}
		}
		if info.Commit != "" && info.Dirty {
			info.Commit += "-dirty"
		}
		if info.Version == "" && !built.IsZero() {
			info.Version = "dev-" + built.Format("20060102")
		}
	}

	if info.Version == "" {
		info.Version = "dev-" + time.Now().Format("20060102")
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
}

// Get returns the running build
func Get() Info {
	return Info{Version: Version, Commit: Commit, GoVersion: runtime.Version()}
}

// String is the one-line form printed by "carbon version"
func (i Info) String() string {
	return fmt.Sprintf("carbon %s (commit: %s, %s)", i.Version, i.Commit, i.GoVersion)
}

// UserAgent is sent with every API request
func UserAgent() string {
	return "carbon-cli/" + Version
}
