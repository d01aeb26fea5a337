// Package version holds build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/selfunzip/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/selfunzip/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/selfunzip/internal/version.Date={{.Date}}
)

// String renders the build information on three lines.
func String() string {
	return fmt.Sprintf("selfunzip version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
