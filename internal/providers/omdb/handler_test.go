// internal/providers/omdb/handler_test.go
package omdb

import (
	"context"
	"encoding/json"
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
		BaseURL:    baseURL,
		APIKey:     "test-api-key",
		Timeout:    5 * time.Second,
		MaxResults: 5,
	}
}

func createMoviesResponse(movies ...map[string]interface{}) []byte {
	if len(movies) == 0 {
		body, _ := json.Marshal(map[string]interface{}{
			"Response": "False",
			"Error":    "Movie not found!",
		})
		return body
	}
	body, _ := json.Marshal(map[string]interface{}{
		"Search":   movies,
		"Response": "True",
	})
	return body
}

func TestHandler_Search_FirstTermWins(t *testing.T) {
	var terms []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("apikey"))
		terms = append(terms, r.URL.Query().Get("s"))

		w.Write(createMoviesResponse(
			map[string]interface{}{"Title": "Before the Rain", "Year": "1994", "Type": "movie"},
		))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "rain", []string{"drama"})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "Before the Rain", result[0].Title)
	assert.Equal(t, "1994", result[0].Year)
	assert.Equal(t, "movie", result[0].Type)
	assert.Equal(t, []string{"rain"}, terms, "later terms should not be tried after a hit")
}

func TestHandler_Search_FallsThroughTerms(t *testing.T) {
	var terms []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("s")
		terms = append(terms, term)

		if term == "romantic comedy" {
			w.Write(createMoviesResponse(
				map[string]interface{}{"Title": "Notting Hill", "Year": "1999", "Type": "movie"},
			))
			return
		}
		w.Write(createMoviesResponse())
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "cozy rainy day", []string{"romantic comedy", "drama"})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "Notting Hill", result[0].Title)
	assert.Equal(t, []string{"cozy rainy day", "cozy rainy day movie", "romantic comedy"}, terms)
}

func TestHandler_Search_AllTermsExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(createMoviesResponse())
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "obscure vibes", nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestHandler_Search_TermErrorMovesOn(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(createMoviesResponse(
			map[string]interface{}{"Title": "Second Try", "Year": "2001", "Type": "movie"},
		))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "flaky", nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Second Try", result[0].Title)
	assert.Equal(t, 2, requestCount)
}

func TestHandler_Search_MissingAPIKey(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.APIKey = ""
	handler := NewHandler(config, NewTestLogger(t))

	result, err := handler.Search(context.Background(), "keyless", nil)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, 0, requestCount)
}

func TestHandler_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	handler := NewHandler(config, NewTestLogger(t))

	result, err := handler.Search(context.Background(), "slow reel", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMovieSearchTimeout))
	assert.Nil(t, result)
}

func TestHandler_BuildSearchTerms(t *testing.T) {
	handler := NewHandler(createTestConfig("http://unused"), NewTestLogger(t))

	terms := handler.buildSearchTerms("cozy night", []string{"romantic comedy", "drama"})
	assert.Equal(t, []string{"cozy night", "cozy night movie", "romantic comedy", "drama"}, terms)

	terms = handler.buildSearchTerms("plain", nil)
	assert.Equal(t, []string{"plain", "plain movie"}, terms)
}

func TestHandler_ProcessResults_Defaults(t *testing.T) {
	handler := NewHandler(createTestConfig("http://unused"), NewTestLogger(t))

	result := handler.processResults([]movieEntry{{}})
	require.Len(t, result, 1)
	assert.Equal(t, "Unknown Title", result[0].Title)
	assert.Equal(t, "Unknown", result[0].Year)
	assert.Equal(t, "Unknown", result[0].Type)
}
