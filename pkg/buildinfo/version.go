// Package buildinfo reports the ontograph build.
//
// Version, Commit and Date are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/ontograph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/ontograph/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/ontograph
//
// Unstamped builds fall back to the module and VCS data the Go toolchain
// embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
