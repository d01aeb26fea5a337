// Package types holds the interfaces shared between the installer
// components: the filesystem abstraction, the operator interaction surface
// and the progress surface.
//
// Concrete implementations live elsewhere (pkg/filesystem, pkg/ui/prompt,
// pkg/ui/progress, pkg/testutil) so the core packages depend only on these
// contracts.
package types
