// internal/providers/geocode/handler_test.go
package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger implements the Logger interface for testing
type TestLogger struct {
	t      *testing.T
	fields map[string]interface{}
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t, fields: make(map[string]interface{})}
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) With(fields map[string]interface{}) Logger {
	return &TestLogger{t: l.t, fields: l.mergeFields(fields)}
}

func (l *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func createTestConfig(baseURL string) *Config {
	return &Config{
		BaseURL: baseURL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	}
}

func TestHandler_Resolve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Pune, India", r.URL.Query().Get("address"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 18.5204303, "lng": 73.8567437}}},
				{"geometry": {"location": {"lat": 0, "lng": 0}}}
			]
		}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Pune, India")
	require.NoError(t, err)
	require.NotNil(t, coords)

	// Only the first result counts.
	assert.Equal(t, 18.5204303, coords.Lat)
	assert.Equal(t, 73.8567437, coords.Lng)
}

func TestHandler_Resolve_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Nowhere At All")
	require.NoError(t, err)
	assert.Nil(t, coords, "an unresolvable location is not an error")
}

func TestHandler_Resolve_OKWithEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Empty OK")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestHandler_Resolve_MissingAPIKey(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.APIKey = ""
	handler := NewHandler(config, NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Keyless City")
	require.NoError(t, err)
	assert.Nil(t, coords)
	assert.Equal(t, 0, requestCount)
}

func TestHandler_Resolve_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	handler := NewHandler(config, NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Slow Town")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeocodeTimeout))
	assert.Nil(t, coords)
}

func TestHandler_Resolve_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	coords, err := handler.Resolve(context.Background(), "Broken Gateway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Nil(t, coords)
}
