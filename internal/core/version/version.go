// Package version reports the build stamped into the binary
package version

import (
	"runtime"
	"runtime/debug"
)

// Service is the name the API reports about itself
const Service = "yukbul-api"

// Stamped with -ldflags "-X yukbul/internal/core/version.version=v0.1.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service  string `json:"service"             example:"yukbul-api"`
	Version  string `json:"version"             example:"v0.1.0"`
	Commit   string `json:"commit"              example:"3f9c2d1"`
	Date     string `json:"date,omitempty"      example:"2026-05-04T08:00:00Z"`
	Modified bool   `json:"modified,omitempty"`
	Go       string `json:"go"                  example:"go1.25.0"`
}

// Info returns the ldflags stamp, falling back to the VCS data the Go
// toolchain embeds
func Info() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if info, ok := debug.ReadBuildInfo(); ok {
		fillVCS(&bi, info.Settings)
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	return bi
}

func fillVCS(bi *BuildInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "" {
				bi.Commit = s.Value
				if len(bi.Commit) > 7 {
					bi.Commit = bi.Commit[:7]
				}
			}
		case "vcs.time":
			if bi.Date == "" {
				bi.Date = s.Value
			}
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		}
	}
}
