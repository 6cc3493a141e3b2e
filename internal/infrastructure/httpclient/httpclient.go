package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
)

const (
	retryWaitMin = 500 * time.Millisecond
	retryWaitMax = 5 * time.Second
)

// NewRetryableClient builds a client that retries transient failures (connection
// errors, 429 and 5xx) and bounds every attempt with the given timeout.
func NewRetryableClient(timeout time.Duration, retries int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.HTTPClient.Timeout = timeout
	client.Logger = LeveledLogger{}
	return client
}

// NewStandardClient wraps a retrying client into a *http.Client that sets the
// given headers on every outgoing request.
func NewStandardClient(client *retryablehttp.Client, headers http.Header) *http.Client {
	std := client.StandardClient()
	std.Transport = &headerTransport{base: std.Transport, headers: headers}
	return std
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, values := range t.headers {
		clone.Header[key] = values
	}
	return t.base.RoundTrip(clone)
}

// LeveledLogger routes retryablehttp logs through logrus.
type LeveledLogger struct{}

var _ retryablehttp.LeveledLogger = LeveledLogger{}

func (LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.WithFields(toFields(keysAndValues)).Error(msg)
}

func (LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.WithFields(toFields(keysAndValues)).Warn(msg)
}

func toFields(keysAndValues []interface{}) logger.Fields {
	fields := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
