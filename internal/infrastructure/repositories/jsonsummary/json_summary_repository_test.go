//go:build unit

package jsonsummary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/jsonsummary"
)

func TestJSONSummaryRepositoryWrite(t *testing.T) {
	t.Parallel()

	t.Run("should write records in order with two space indentation", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "out", "version-updates.json")
		repo := jsonsummary.NewJSONSummaryRepository()
		records := []entities.UpdateRecord{
			{Name: "qemu", Old: "8.0.0", New: "v8.2.0"},
			{Name: "linux", Old: "v6.12", New: "v6.12.3"},
		}

		// when
		err := repo.Write(path, records)

		// then
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		expected := `[
  {
    "name": "qemu",
    "old": "8.0.0",
    "new": "v8.2.0"
  },
  {
    "name": "linux",
    "old": "v6.12",
    "new": "v6.12.3"
  }
]
`
		assert.Equal(t, expected, string(data))
	})

	t.Run("should write an empty array for no records", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "summary.json")
		repo := jsonsummary.NewJSONSummaryRepository()

		// when
		err := repo.Write(path, nil)

		// then
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("should return error when the parent is a file", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		blocker := filepath.Join(dir, "out")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
		repo := jsonsummary.NewJSONSummaryRepository()

		// when
		err := repo.Write(filepath.Join(blocker, "summary.json"), nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output directory")
	})
}
