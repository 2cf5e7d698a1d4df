/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package agml

// Version information, overridable with -ldflags "-X github.com/suparena/agml.GitCommit=...".
var (
	// Version is the semantic version of agml
	Version = "0.1.0"

	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the build's version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
	}
}
