// internal/providers/youtube/handler_test.go
package youtube

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

func createSearchResponse(videos ...map[string]interface{}) []byte {
	items := make([]map[string]interface{}, 0, len(videos))
	for _, v := range videos {
		item := map[string]interface{}{
			"id":      map[string]interface{}{},
			"snippet": map[string]interface{}{},
		}
		if id, ok := v["videoId"]; ok {
			item["id"] = map[string]interface{}{"videoId": id}
		}
		if title, ok := v["title"]; ok {
			item["snippet"] = map[string]interface{}{"title": title}
		}
		items = append(items, item)
	}
	body, _ := json.Marshal(map[string]interface{}{"items": items})
	return body
}

func TestHandler_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "cozy rainy day recipe", r.URL.Query().Get("q"))
		assert.Equal(t, "video", r.URL.Query().Get("type"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(createSearchResponse(
			map[string]interface{}{"videoId": "abc123", "title": "Rainy Day Soup"},
			map[string]interface{}{"videoId": "def456", "title": "Chai Two Ways"},
		))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "cozy rainy day")
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Rainy Day Soup", result[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", result[0].Link)
	assert.Equal(t, "Chai Two Ways", result[1].Title)
}

func TestHandler_Search_SkipsIncompleteItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(createSearchResponse(
			map[string]interface{}{"title": "No ID Here"},
			map[string]interface{}{"videoId": "ghi789"},
			map[string]interface{}{"videoId": "jkl012", "title": "Kept"},
		))
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "partial")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Kept", result[0].Title)
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

	result, err := handler.Search(context.Background(), "keyless")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	assert.Equal(t, 0, requestCount, "no request should leave the process without a key")
}

func TestHandler_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	handler := NewHandler(config, NewTestLogger(t))

	result, err := handler.Search(context.Background(), "slow kitchen")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrYouTubeSearchTimeout))
	assert.Nil(t, result)
}

func TestHandler_Search_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "denied kitchen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Nil(t, result)
}

func TestHandler_EdgeCases(t *testing.T) {
	t.Run("empty response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

		result, err := handler.Search(context.Background(), "nothing")
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("truncates to max results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(createSearchResponse(
				map[string]interface{}{"videoId": "a", "title": "A"},
				map[string]interface{}{"videoId": "b", "title": "B"},
				map[string]interface{}{"videoId": "c", "title": "C"},
			))
		}))
		defer server.Close()

		config := createTestConfig(server.URL)
		config.MaxResults = 2
		handler := NewHandler(config, NewTestLogger(t))

		result, err := handler.Search(context.Background(), "overflow")
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})
}
