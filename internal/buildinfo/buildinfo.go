// Package buildinfo centralises build metadata for the wtstatus binary.
// The linker injects values into cmd/wtstatus/main.go; main() calls Set() to
// forward them here so every other package can query them.
package buildinfo

import "runtime/debug"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// Enrich fills a missing commit from runtime/debug.ReadBuildInfo() when the
// binary was built without ldflags (go install).
func Enrich() {
	if commit != "none" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			commit = setting.Value
		}
	}
}
