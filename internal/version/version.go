// Package version provides version information for the mqtbench CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CompilerName identifies the built-in compiler service in circuit headers.
const CompilerName = "mqtbench-transpile"

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Compiler is the compiler service identifier.
	Compiler string `json:"compiler"`

	// CUESDKVersion is the CUE SDK version linked into the binary.
	CUESDKVersion string `json:"cueSDKVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Compiler:      CompilerVersion(),
		CUESDKVersion: dependencyVersion("cuelang.org/go"),
	}
}

// CompilerVersion returns the compiler identifier written into headers.
func CompilerVersion() string {
	return CompilerName + " " + Version
}

// dependencyVersion reads a module version from the embedded build info.
func dependencyVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "unknown"
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("MQT Bench CLI:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nCompiler:\n  %s\n\nCUE:\n  SDK Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Compiler, i.CUESDKVersion)
}
