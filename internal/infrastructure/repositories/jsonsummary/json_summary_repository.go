package jsonsummary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
)

// JSONSummaryRepository writes accepted updates as a JSON array of
// {"name","old","new"} objects, in processing order.
type JSONSummaryRepository struct{}

// NewJSONSummaryRepository creates a new JSONSummaryRepository.
func NewJSONSummaryRepository() *JSONSummaryRepository {
	return &JSONSummaryRepository{}
}

var _ repositories.SummaryRepository = (*JSONSummaryRepository)(nil)

// Write creates the parent directory when needed and replaces the file at path.
func (it *JSONSummaryRepository) Write(path string, records []entities.UpdateRecord) error {
	if records == nil {
		records = []entities.UpdateRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode update summary: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %q: %w", path, err)
	}
	if err = os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
