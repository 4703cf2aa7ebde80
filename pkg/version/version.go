// Package version exposes the tickwatch build version.
package version

// version is set at build time via -ldflags "-X github.com/rshade/tickwatch/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // Overridden by the linker at release time

// GetVersion returns the version stamped into the binary, or "dev" for
// local builds.
func GetVersion() string {
	return version
}
