//go:build unit

package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pinwatch/internal/infrastructure/httpclient"
)

func TestNewStandardClient(t *testing.T) {
	t.Parallel()

	t.Run("should set the configured headers on every request", func(t *testing.T) {
		t.Parallel()

		// given
		var accept, auth string
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			accept = r.Header.Get("Accept")
			auth = r.Header.Get("Authorization")
		}))
		defer server.Close()

		headers := http.Header{}
		headers.Set("Accept", "application/vnd.github+json")
		headers.Set("Authorization", "Bearer token")
		client := httpclient.NewStandardClient(httpclient.NewRetryableClient(time.Second, 0), headers)

		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Accept", "application/json")

		// when
		resp, err := client.Do(req)

		// then
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "application/vnd.github+json", accept)
		assert.Equal(t, "Bearer token", auth)
		assert.Equal(t, "application/json", req.Header.Get("Accept"), "caller request must not be mutated")
	})
}

func TestNewRetryableClient(t *testing.T) {
	t.Parallel()

	t.Run("should retry a transient server error", func(t *testing.T) {
		t.Parallel()

		// given
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := httpclient.NewRetryableClient(time.Second, 1)

		// when
		resp, err := client.Get(server.URL)

		// then
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("should apply the retry budget and timeout", func(t *testing.T) {
		t.Parallel()

		// when
		client := httpclient.NewRetryableClient(5*time.Second, 3)

		// then
		assert.Equal(t, 3, client.RetryMax)
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
	})
}
