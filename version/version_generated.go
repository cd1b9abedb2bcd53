//go:build !dev

package version

import (
	"runtime/debug"
)

// Release builds set these with -ldflags. Values left empty are filled from
// the build information the go tool embeds in the binary.
var (
	// Version is the version number of the program.
	Version string

	// Revision is the git revision that program was built from.
	Revision string

	// Branch is the git branch that program was built from.
	Branch string

	// BuildUser is the user that built program.
	BuildUser string

	// BuildHost is the host that built program.
	BuildHost string

	// BuildDate is the date that program was built.
	BuildDate string
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	fillFromBuildInfo(info)
}

func fillFromBuildInfo(info *debug.BuildInfo) {
	if Version == "" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Revision == "" {
				Revision = s.Value
			}
		case "vcs.time":
			if BuildDate == "" {
				BuildDate = s.Value
			}
		}
	}
}
