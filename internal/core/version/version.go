// Package version provides information about the build version of the service.
package version

import "runtime"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the build information for service. The version, commit, and date
// variables are intended to be set at build time using -ldflags.
func Info(service string) BuildInfo {
	// Set via -ldflags "-X 'domamarket/internal/core/version.version=v0.1.0'
	// -X 'domamarket/internal/core/version.commit=abcd' -X 'domamarket/internal/core/version.date=2026-10-01'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

// UserAgent is the value sent upstream, e.g. "domamarket/dev"
func UserAgent() string { return "domamarket/" + version }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
