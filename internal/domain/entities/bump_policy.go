package entities

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// BumpPolicy gates which version transitions may be applied.
type BumpPolicy struct {
	AllowMajorBumps  bool
	AllowPrereleases bool
}

// Allows decides whether moving from oldRef to newRef is permitted.
// Only the major component and the prerelease status are gated; when either
// side cannot be parsed the bump goes through.
func (p BumpPolicy) Allows(oldRef, newRef string) bool {
	oldVer, okOld := ParseVersion(oldRef)
	newVer, okNew := ParseVersion(newRef)
	if !okOld || !okNew {
		return true
	}

	if newVer.IsPrerelease() && !p.AllowPrereleases {
		return false
	}

	if newVer.Major != oldVer.Major && !p.AllowMajorBumps {
		return false
	}

	return true
}

// AcceptsTag reports whether a tag may be considered at all as a candidate.
func (p BumpPolicy) AcceptsTag(tag string) bool {
	if p.AllowPrereleases {
		return true
	}
	parsed, ok := ParseVersion(tag)
	return !ok || !parsed.IsPrerelease()
}

// BumpKind describes which part of the version a bump moves.
type BumpKind string

const (
	BumpMajor   BumpKind = "major"
	BumpMinor   BumpKind = "minor"
	BumpPatch   BumpKind = "patch"
	BumpUnknown BumpKind = "unknown"
)

// ClassifyBump determines the type of version change between two refs.
func ClassifyBump(oldRef, newRef string) BumpKind {
	oldCanon, okOld := canonicalSemver(oldRef)
	newCanon, okNew := canonicalSemver(newRef)
	if !okOld || !okNew {
		return BumpUnknown
	}

	switch {
	case semver.Major(oldCanon) != semver.Major(newCanon):
		return BumpMajor
	case semver.MajorMinor(oldCanon) != semver.MajorMinor(newCanon):
		return BumpMinor
	default:
		return BumpPatch
	}
}

// canonicalSemver maps a parsed ref onto "vMAJOR.MINOR.PATCH" so x/mod/semver can handle it.
func canonicalSemver(ref string) (string, bool) {
	parsed, ok := ParseVersion(ref)
	if !ok {
		return "", false
	}
	canon := fmt.Sprintf("v%d.%d.%d", parsed.Major, parsed.Minor, parsed.Patch)
	return canon, semver.IsValid(canon)
}
