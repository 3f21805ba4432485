package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "tstyle"

var (
	buildOnce sync.Once
	buildVer  string
	buildHash string
)

func readBuildInfo() {
	buildVer, buildHash = "unknown", "unknown"
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if len(bi.Main.Version) > 0 && bi.Main.Version != "(devel)" {
		buildVer = bi.Main.Version
	}
	var rev, modified string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if len(rev) > 0 {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if modified == "true" {
			rev += "*"
		}
		buildHash = rev
	}
}

// GetAppName returns the program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded in the build metadata.
func GetVersion() string {
	buildOnce.Do(readBuildInfo)
	return buildVer
}

// GetGitHash returns the VCS revision recorded in the build metadata,
// suffixed with "*" when the working tree was dirty.
func GetGitHash() string {
	buildOnce.Do(readBuildInfo)
	return buildHash
}
