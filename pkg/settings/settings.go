// Package settings holds build metadata and per-run parameters shared by
// the CLI and UI packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "h5x"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, semantic version, and build
// timestamp of the running binary.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	Container   string
	Provider    []string
	NoColor     bool
}
