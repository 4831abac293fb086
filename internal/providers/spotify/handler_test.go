// internal/providers/spotify/handler_test.go
package spotify

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

func createTestConfig(serverURL string) *Config {
	return &Config{
		TokenURL:     serverURL + "/api/token",
		BaseURL:      serverURL + "/v1",
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		Timeout:      5 * time.Second,
		MaxResults:   5,
	}
}

func createPlaylistsResponse(items ...interface{}) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"playlists": map[string]interface{}{"items": items},
	})
	return body
}

// newProviderStub serves both the token endpoint and the search
// endpoint so the client-credentials flow runs end to end.
func newProviderStub(t *testing.T, searchHandler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok, "token request should use basic auth")
			assert.Equal(t, "test-client-id", user)
			assert.Equal(t, "test-client-secret", pass)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
			return
		}
		searchHandler(w, r)
	}))
}

func TestHandler_Search_Success(t *testing.T) {
	server := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "cozy rainy day", r.URL.Query().Get("q"))
		assert.Equal(t, "playlist", r.URL.Query().Get("type"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(createPlaylistsResponse(
			map[string]interface{}{
				"name":          "Rainy Day Jazz",
				"external_urls": map[string]interface{}{"spotify": "https://open.spotify.com/playlist/1"},
				"images":        []map[string]interface{}{{"url": "https://i.scdn.co/image/1"}},
			},
		))
	})
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "cozy rainy day")
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "Rainy Day Jazz", result[0].Name)
	assert.Equal(t, "https://open.spotify.com/playlist/1", result[0].Link)
	assert.Equal(t, "https://i.scdn.co/image/1", result[0].Image)
}

func TestHandler_Search_SkipsNullItems(t *testing.T) {
	server := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(createPlaylistsResponse(
			nil,
			map[string]interface{}{
				"external_urls": map[string]interface{}{"spotify": "https://open.spotify.com/playlist/2"},
			},
		))
	})
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "sparse page")
	require.NoError(t, err)
	require.Len(t, result, 1)

	// A playlist with no name still comes through, under a placeholder.
	assert.Equal(t, "Unknown", result[0].Name)
	assert.Equal(t, "https://open.spotify.com/playlist/2", result[0].Link)
	assert.Equal(t, "", result[0].Image)
}

func TestHandler_Search_MissingCredentials(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.ClientID = ""
	handler := NewHandler(config, NewTestLogger(t))

	result, err := handler.Search(context.Background(), "keyless")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	assert.Equal(t, 0, requestCount, "no token exchange should happen without credentials")
}

func TestHandler_Search_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		t.Error("search should not be reached when the token exchange fails")
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "bad credentials")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpotifyAuthFailed))
	assert.Nil(t, result)
}

func TestHandler_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	config := createTestConfig(server.URL)
	config.Timeout = 50 * time.Millisecond
	handler := NewHandler(config, NewTestLogger(t))

	result, err := handler.Search(context.Background(), "slow stage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpotifySearchTimeout))
	assert.Nil(t, result)
}

func TestHandler_Search_APIError(t *testing.T) {
	server := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "rate limited")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Nil(t, result)
}

func TestHandler_Search_TokenReuse(t *testing.T) {
	tokenRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			tokenRequests++
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
			return
		}
		w.Write(createPlaylistsResponse())
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	for i := 0; i < 3; i++ {
		_, err := handler.Search(context.Background(), "repeat")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, tokenRequests, "a cached token should be reused until it expires")
}
