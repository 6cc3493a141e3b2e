//go:build unit

package kernelorg_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pinwatch/internal/domain/entities"
	"github.com/rios0rios0/pinwatch/internal/domain/repositories"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/repositories/kernelorg"
)

const feed = `{
  "latest_stable": {"version": "6.12.3"},
  "releases": [
    {"iseol": false, "moniker": "mainline", "version": "6.13-rc2"},
    {"iseol": false, "moniker": "stable", "version": "6.12.3"},
    {"iseol": false, "moniker": "longterm", "version": "6.6.65"}
  ]
}`

func newSource(t *testing.T, status int, body string) repositories.SourceRepository {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return kernelorg.NewKernelOrgSourceRepository(&entities.Settings{
		KernelFeedURL: server.URL + "/releases.json",
		HTTPTimeout:   entities.DefaultHTTPTimeout,
	})
}

func TestKernelOrgSourceRepositoryLatestVersion(t *testing.T) {
	t.Parallel()

	t.Run("should return the stable release", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusOK, feed)

		// when
		version, found, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "6.6.60"}, entities.BumpPolicy{},
		)

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "6.12.3", version)
		assert.Equal(t, "kernelorg", source.Name())
	})

	t.Run("should add a v marker when the pinned ref has one", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusOK, feed)

		// when
		version, found, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "v6.12"}, entities.BumpPolicy{},
		)

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v6.12.3", version)
	})

	t.Run("should report not found when the feed has no stable release", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusOK, `{"releases":[{"moniker":"mainline","version":"6.13-rc2"}]}`)

		// when
		version, found, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "v6.12"}, entities.BumpPolicy{},
		)

		// then
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, version)
	})

	t.Run("should return error when the feed has an unexpected shape", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusOK, `{"releases":[{"moniker":"stable","version":612}]}`)

		// when
		_, found, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "v6.12"}, entities.BumpPolicy{},
		)

		// then
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "does not match the expected shape")
	})

	t.Run("should return error when the feed is not JSON", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusOK, `<html>maintenance</html>`)

		// when
		_, _, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "v6.12"}, entities.BumpPolicy{},
		)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("should return error on a non-OK status", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, http.StatusNotFound, `not found`)

		// when
		_, _, err := source.LatestVersion(
			context.Background(), entities.Component{Name: "linux", Ref: "v6.12"}, entities.BumpPolicy{},
		)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})
}
