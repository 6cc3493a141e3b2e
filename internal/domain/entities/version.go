package entities

import (
	"regexp"
	"strconv"
	"strings"
)

// versionPattern matches "MAJOR.MINOR[.PATCH][SUFFIX]" where SUFFIX starts with "-" or ".".
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?([\-.].+)?$`)

// prereleaseMarkers are matched case-insensitively anywhere inside a suffix.
var prereleaseMarkers = []string{"rc", "alpha", "beta", "pre"}

// ParsedVersion is the structured form of a loosely semver-like tag.
type ParsedVersion struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string // everything after the numeric core, leading separator included
}

// Core returns the numeric triple.
func (v ParsedVersion) Core() [3]int {
	return [3]int{v.Major, v.Minor, v.Patch}
}

// IsPrerelease reports whether the version suffix marks a prerelease.
func (v ParsedVersion) IsPrerelease() bool {
	return IsPrerelease(v.Suffix)
}

// NormalizeUnderscores rewrites underscore separated tags (BusyBox style, e.g. "1_36_1")
// into their dotted form.
func NormalizeUnderscores(tag string) string {
	return strings.ReplaceAll(tag, "_", ".")
}

// ParseVersion extracts (major, minor, patch, suffix) from forms such as
// "v2.10.0", "2.10.0", "v2024.10", "6.12", "1_36_1" or "2.0.0-rc1".
// The second result is false when the string does not look like a version.
func ParseVersion(raw string) (ParsedVersion, bool) {
	s := NormalizeUnderscores(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "v")

	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return ParsedVersion{}, false
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return ParsedVersion{}, false
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return ParsedVersion{}, false
	}
	patch := 0
	if m[3] != "" {
		if patch, err = strconv.Atoi(m[3]); err != nil {
			return ParsedVersion{}, false
		}
	}

	return ParsedVersion{Major: major, Minor: minor, Patch: patch, Suffix: m[4]}, true
}

// IsPrerelease treats suffixes containing rc, alpha, beta or pre as prereleases.
func IsPrerelease(suffix string) bool {
	if suffix == "" {
		return false
	}
	lower := strings.ToLower(suffix)
	for _, marker := range prereleaseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CompareVersions orders two raw version strings, returning -1, 0 or 1.
// When either side does not parse, the raw strings are compared lexicographically.
func CompareVersions(a, b string) int {
	pa, okA := ParseVersion(a)
	pb, okB := ParseVersion(b)
	if !okA || !okB {
		return strings.Compare(a, b)
	}

	coreA, coreB := pa.Core(), pb.Core()
	for i := range coreA {
		if coreA[i] != coreB[i] {
			if coreA[i] > coreB[i] {
				return 1
			}
			return -1
		}
	}

	// same numeric core: a release outranks a prerelease
	preA, preB := pa.IsPrerelease(), pb.IsPrerelease()
	if preA != preB {
		if preA {
			return -1
		}
		return 1
	}

	return strings.Compare(pa.Suffix, pb.Suffix)
}

// IsNewerVersion reports whether candidate orders strictly above current.
func IsNewerVersion(current, candidate string) bool {
	return CompareVersions(candidate, current) > 0
}
