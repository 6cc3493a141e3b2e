//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
)

func TestInsertChangelogEntry(t *testing.T) {
	t.Parallel()

	t.Run("should insert entry into empty Unreleased section", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2026-01-01\n\n### Added\n\n- initial release\n"
		entries := []string{"- changed the pinned `qemu` version from `8.0.0` to `v8.2.0` (minor)"}

		// when
		result := entities.InsertChangelogEntry(content, entries)

		// then
		assert.Contains(t, result, "## [Unreleased]\n\n### Changed\n\n- changed the pinned `qemu`")
		assert.Contains(t, result, "## [1.0.0] - 2026-01-01")
	})

	t.Run("should append entry after the last bullet of an existing Changed subsection", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [Unreleased]\n\n### Changed\n\n- existing change\n\n## [1.0.0] - 2026-01-01\n"
		entries := []string{"- changed the pinned `linux` version from `v6.12` to `v6.12.3` (patch)"}

		// when
		result := entities.InsertChangelogEntry(content, entries)

		// then
		assert.Contains(t, result, "- existing change\n- changed the pinned `linux`")
	})

	t.Run("should add the bullet marker when missing", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## [Unreleased]\n"

		// when
		result := entities.InsertChangelogEntry(content, []string{"bumped atf"})

		// then
		assert.Contains(t, result, "### Changed\n\n- bumped atf")
	})

	t.Run("should return content unchanged when Unreleased section is missing", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [1.0.0] - 2026-01-01\n"

		// when
		result := entities.InsertChangelogEntry(content, []string{"- something"})

		// then
		assert.Equal(t, content, result)
	})

	t.Run("should return content unchanged when there are no entries", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## [Unreleased]\n"

		// when
		result := entities.InsertChangelogEntry(content, nil)

		// then
		assert.Equal(t, content, result)
	})
}

func TestChangelogEntries(t *testing.T) {
	t.Parallel()

	t.Run("should render one bullet per record with the bump kind", func(t *testing.T) {
		t.Parallel()

		// given
		records := []entities.UpdateRecord{
			{Name: "qemu", Old: "8.0.0", New: "v9.0.0"},
			{Name: "linux", Old: "v6.12", New: "v6.12.3"},
		}

		// when
		entries := entities.ChangelogEntries(records)

		// then
		assert.Equal(t, []string{
			"- changed the pinned `qemu` version from `8.0.0` to `v9.0.0` (major)",
			"- changed the pinned `linux` version from `v6.12` to `v6.12.3` (patch)",
		}, entries)
	})
}
