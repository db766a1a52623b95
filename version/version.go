// Package version provides build information for the weburl binary and the
// cobra command that prints it.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/jongio/weburl/version.Version=1.2.3"
var (
	Version   = ""
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info holds version information.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// New creates an Info from the ldflags variables. When Version was not set
// the main module version from the embedded build info is used, and
// "0.0.0-dev" when that is unavailable too.
func New(name string) *Info {
	return &Info{
		Name:      name,
		Version:   resolveVersion(Version, debug.ReadBuildInfo),
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
}

func resolveVersion(set string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if set != "" {
		return set
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "0.0.0-dev"
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
