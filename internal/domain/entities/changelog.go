package entities

import (
	"fmt"
	"strings"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// ChangelogEntries renders one Keep-a-Changelog bullet per accepted update.
func ChangelogEntries(records []UpdateRecord) []string {
	entries := make([]string, 0, len(records))
	for _, r := range records {
		entries = append(entries, fmt.Sprintf(
			"- changed the pinned `%s` version from `%s` to `%s` (%s)",
			r.Name, r.Old, r.New, ClassifyBump(r.Old, r.New),
		))
	}
	return entries
}

// InsertChangelogEntry adds bullet entries to the "### Changed" subsection of
// "## [Unreleased]", creating the subsection when needed. Content without an
// Unreleased section is returned unchanged.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	start := indexOfLine(lines, 0, len(lines), unreleasedHeading)
	if start < 0 {
		return content
	}
	end := nextReleaseHeading(lines, start)

	bullets := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasPrefix(entry, bulletPrefix) {
			entry = bulletPrefix + entry
		}
		bullets = append(bullets, entry)
	}

	if changed := indexOfLine(lines, start+1, end, changedSubheading); changed >= 0 {
		return strings.Join(splice(lines, lastBullet(lines, changed, end)+1, bullets), "\n")
	}

	block := append([]string{"", changedSubheading, ""}, bullets...)
	return strings.Join(splice(lines, start+1, block), "\n")
}

// indexOfLine finds the first line in [from, to) equal to want once trimmed.
func indexOfLine(lines []string, from, to int, want string) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

func nextReleaseHeading(lines []string, after int) int {
	for i := after + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			return i
		}
	}
	return len(lines)
}

// lastBullet returns the index of the last bullet of the subsection opened at heading.
// Blank lines between bullets are tolerated; any other line ends the subsection.
func lastBullet(lines []string, heading, end int) int {
	last := heading
	for i := heading + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, bulletPrefix):
			last = i
		default:
			return last
		}
	}
	return last
}

func splice(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	return append(result, lines[at:]...)
}
