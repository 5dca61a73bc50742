package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X github.com/kcaldas/treepeek/pkg/version.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Modified  bool   `json:"modified,omitempty"`
}

// GetInfo returns the linked build information. Commit and date fall back to
// the VCS stamp embedded by the go tool when they were not set at link time.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildSettings(bi.Settings)
	}
	return info
}

func (i *Info) applyBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "unknown" && s.Value != "" {
				i.Commit = s.Value
				if len(i.Commit) > 12 {
					i.Commit = i.Commit[:12]
				}
			}
		case "vcs.time":
			if i.Date == "unknown" && s.Value != "" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

// GetVersion returns just the version string
func GetVersion() string {
	return Version
}

// String returns the multi-line form printed by `treepeek version`.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", i.ShortString())
	commit := i.Commit
	if i.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(&sb, "commit: %s\n", commit)
	fmt.Fprintf(&sb, "built: %s\n", i.Date)
	fmt.Fprintf(&sb, "by: %s\n", i.BuiltBy)
	fmt.Fprintf(&sb, "go: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "platform: %s", i.Platform)
	return sb.String()
}

// ShortString returns a short version string
func (i Info) ShortString() string {
	return "treepeek version " + i.Version
}
