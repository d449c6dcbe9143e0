// Package build holds build-time information.
package build

// These are set at link time with -ldflags "-X go.trai.ch/depsub/internal/build.Version=...".
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
