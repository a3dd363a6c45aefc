package user

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a canonical semantic version such as "v2.1.0".
type Version string

// ParseVersion accepts "2.1", "v2.1.0" and similar spellings.
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !semver.IsValid(s) {
		return "", false
	}
	return Version(semver.Canonical(s)), true
}

// String drops the leading "v".
func (v Version) String() string { return strings.TrimPrefix(string(v), "v") }

func (v Version) Less(o Version) bool { return semver.Compare(string(v), string(o)) < 0 }
