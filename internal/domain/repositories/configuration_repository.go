package repositories

import "github.com/rios0rios0/pinwatch/internal/domain/entities"

// ConfigurationRepository loads and persists the pinned versions file.
type ConfigurationRepository interface {
	Load(path string) (*entities.Configuration, error)

	// Save writes the whole configuration back, preserving the original key order.
	Save(path string, cfg *entities.Configuration) error
}

// SummaryRepository persists the machine-readable list of accepted updates.
type SummaryRepository interface {
	Write(path string, records []entities.UpdateRecord) error
}

// ChangelogRepository appends accepted updates to a human-readable changelog.
type ChangelogRepository interface {
	Append(path string, records []entities.UpdateRecord) error
}
