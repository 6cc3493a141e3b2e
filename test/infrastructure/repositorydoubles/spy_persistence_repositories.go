//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

// SpyConfigurationRepository implements repositories.ConfigurationRepository in memory.
type SpyConfigurationRepository struct {
	// --- Load ---
	Config  *entities.Configuration
	LoadErr error
	// spy: paths requested
	LoadedPaths []string

	// --- Save ---
	SaveErr error
	// spy: snapshots of what was saved
	SavedPaths   []string
	SavedConfigs [][]entities.Component
}

var _ repositories.ConfigurationRepository = (*SpyConfigurationRepository)(nil)

func (r *SpyConfigurationRepository) Load(path string) (*entities.Configuration, error) {
	r.LoadedPaths = append(r.LoadedPaths, path)
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return r.Config, nil
}

func (r *SpyConfigurationRepository) Save(path string, cfg *entities.Configuration) error {
	r.SavedPaths = append(r.SavedPaths, path)
	r.SavedConfigs = append(r.SavedConfigs, cfg.Components())
	return r.SaveErr
}

// SpySummaryRepository implements repositories.SummaryRepository as a spy.
type SpySummaryRepository struct {
	WriteErr error
	// spy: inputs received
	WrittenPaths   []string
	WrittenRecords [][]entities.UpdateRecord
}

var _ repositories.SummaryRepository = (*SpySummaryRepository)(nil)

func (r *SpySummaryRepository) Write(path string, records []entities.UpdateRecord) error {
	r.WrittenPaths = append(r.WrittenPaths, path)
	r.WrittenRecords = append(r.WrittenRecords, records)
	return r.WriteErr
}

// SpyChangelogRepository implements repositories.ChangelogRepository as a spy.
type SpyChangelogRepository struct {
	AppendErr error
	// spy: inputs received
	AppendedPaths   []string
	AppendedRecords [][]entities.UpdateRecord
}

var _ repositories.ChangelogRepository = (*SpyChangelogRepository)(nil)

func (r *SpyChangelogRepository) Append(path string, records []entities.UpdateRecord) error {
	r.AppendedPaths = append(r.AppendedPaths, path)
	r.AppendedRecords = append(r.AppendedRecords, records)
	return r.AppendErr
}
