// Package version resolves the dist version that generated workflows install
// and checks release versions.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Current is the version of this dist binary. Generated workflows install
// this version unless the configuration pins another one.
const Current = "0.4.0"

// canonical converts a bare "1.2.3" version to the "v1.2.3" form the semver
// package works with. Abbreviated versions ("1", "1.2") and versions that
// already carry a "v" are rejected.
func canonical(v string) (string, error) {
	core, _, _ := strings.Cut(v, "+")
	core, _, _ = strings.Cut(core, "-")
	if strings.HasPrefix(v, "v") || strings.Count(core, ".") != 2 || !semver.IsValid("v"+v) {
		return "", fmt.Errorf("invalid semver format: %q (expected MAJOR.MINOR.PATCH)", v)
	}
	return "v" + v, nil
}

// Validate checks that v is a full semantic version such as "1.0.0" or
// "2.0.0-beta.1".
func Validate(v string) error {
	_, err := canonical(v)
	return err
}

// Resolve returns the dist version CI installs: the pinned version, or
// Current when nothing is pinned.
func Resolve(pinned string) string {
	if pinned == "" {
		return Current
	}
	return pinned
}

// IsPrerelease reports whether v has a prerelease part. Invalid versions are
// never prereleases.
func IsPrerelease(v string) bool {
	c, err := canonical(v)
	return err == nil && semver.Prerelease(c) != ""
}

// MismatchWarning describes a pinned dist version that differs from Current,
// or returns "" when nothing is pinned, the versions match, or pinned is invalid.
// Build metadata is ignored.
func MismatchWarning(pinned string) string {
	if pinned == "" {
		return ""
	}
	p, err := canonical(pinned)
	if err != nil {
		return ""
	}
	switch semver.Compare(p, "v"+Current) {
	case 0:
		return ""
	case -1:
		return fmt.Sprintf("dist.version is %s but this is dist %s; CI will run an older dist than the one generating the workflow", pinned, Current)
	default:
		return fmt.Sprintf("dist.version is %s but this is dist %s; update dist before regenerating the workflow", pinned, Current)
	}
}
