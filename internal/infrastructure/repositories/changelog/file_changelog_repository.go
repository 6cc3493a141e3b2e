package changelog

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

// FileChangelogRepository appends bump entries to a Keep-a-Changelog file on disk.
type FileChangelogRepository struct{}

// NewFileChangelogRepository creates a new FileChangelogRepository.
func NewFileChangelogRepository() *FileChangelogRepository {
	return &FileChangelogRepository{}
}

var _ repositories.ChangelogRepository = (*FileChangelogRepository)(nil)

// Append inserts one bullet per record under "## [Unreleased]" / "### Changed".
func (it *FileChangelogRepository) Append(path string, records []entities.UpdateRecord) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat changelog %q: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read changelog %q: %w", path, err)
	}

	updated := entities.InsertChangelogEntry(string(content), entities.ChangelogEntries(records))
	if updated == string(content) {
		logger.Warnf("Changelog %q has no [Unreleased] section, leaving it untouched", path)
		return nil
	}

	if err = os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write changelog %q: %w", path, err)
	}
	return nil
}
