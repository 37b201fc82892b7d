// Package version reports the lintfix build version.
package version

import (
	"regexp"
	"runtime/debug"
	"strings"
)

const devel = "(devel)"

// Stamped is set at link time with
// -ldflags "-X github.com/brandonbloom/lintfix/internal/version.Stamped=v1.2.3".
var Stamped string

// pseudoVersion matches the timestamp-hash tail of a Go pseudo-version.
var pseudoVersion = regexp.MustCompile(`[-.](?:0\.)?\d{14}-[0-9a-fA-F]{12,}$`)

// Where a version string came from.
const (
	SourceLinker    = "ldflags"
	SourceBuildInfo = "module"
	SourceLocal     = "local build"
)

// String returns the stamped version, the module version from build info,
// or "(devel)" for local and pseudo-versioned builds.
func String() string {
	v, _ := Describe()
	return v
}

// Describe returns the version together with its source.
func Describe() (version, source string) {
	if v := strings.TrimSpace(Stamped); v != "" {
		return v, SourceLinker
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return devel, SourceLocal
	}
	v := normalize(info.Main.Version)
	if v == devel {
		return v, SourceLocal
	}
	return v, SourceBuildInfo
}

func normalize(v string) string {
	if v == "" || v == devel || strings.Contains(v, "+dirty") {
		return devel
	}
	base, _, _ := strings.Cut(v, "+")
	if pseudoVersion.MatchString(base) {
		return devel
	}
	return v
}
