package config

import (
	"os"
	"runtime/debug"
	"strings"
)

// Version is set at build time with -ldflags "-X chartdeck/internal/config.Version=..."
var Version = ""

// GetVersion returns the service version. APP_VERSION wins over the build-time
// value, which wins over the VCS revision recorded by the Go toolchain.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if Version != "" {
		return Version
	}
	return buildRevision()
}

// buildRevision returns a short VCS revision from the embedded build info
func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	return strings.TrimSpace(revision)
}
