// cmd/tools/provider-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ProviderData holds data for templates
type ProviderData struct {
	Name      string // package and provider name, e.g. "deezer"
	TypeName  string // exported identifier prefix, e.g. "Deezer"
	Display   string // human-readable name for comments
	Result    string // record type the adapter emits, e.g. "Track"
	ResultVar string // lowered record noun for messages and logs
	Code      string // error code prefix, e.g. "DEEZER"
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/providers/{{ .Name }}/config.go
package {{ .Name }}

import "time"

// Config holds the settings for the {{ .Display }} adapter.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxResults int
}
`

const modelsTemplate = `// internal/providers/{{ .Name }}/models.go
package {{ .Name }}

// Wire shapes for the {{ .Display }} search API. Only the fields the
// adapter reads are declared; match them to the provider's API reference.

type searchResponse struct {
	Items []searchItem ` + "`json:\"items\"`" + `
}

type searchItem struct {
	Title string ` + "`json:\"title\"`" + `
	Link  string ` + "`json:\"link\"`" + `
}

// {{ .Result }} is the record this adapter emits. Move it into
// internal/models once the planner consumes this provider.
type {{ .Result }} struct {
	Title string ` + "`json:\"title\"`" + `
	Link  string ` + "`json:\"link\"`" + `
}
`

const handlerTemplate = `// internal/providers/{{ .Name }}/handler.go
package {{ .Name }}

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	commonhttp "vibe-planner/internal/common/http"
)

const ProviderName = "{{ .Name }}"

var (
	Err{{ .TypeName }}SearchTimeout = errors.New("{{ .Code }}_SEARCH_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler searches the {{ .Display }} API for {{ .ResultVar }} records
// matching a vibe query.
type Handler struct {
	config *Config
	client *commonhttp.Client
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	return &Handler{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

// Search returns normalized {{ .ResultVar }} records for the query. Without
// an API key the provider is skipped and an empty list is returned.
func (h *Handler) Search(ctx context.Context, query string) ([]{{ .Result }}, error) {
	if h.config.APIKey == "" {
		h.logger.Warn("api key not configured, skipping search", nil)
		return []{{ .Result }}{}, nil
	}

	searchURL := h.buildSearchURL(query)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, Err{{ .TypeName }}SearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("{{ .ResultVar }} search API returned %d", resp.StatusCode)
	}

	var apiResponse searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	result := h.processResults(apiResponse.Items)

	h.logger.Info("{{ .ResultVar }} search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(result),
	})

	return result, nil
}

func (h *Handler) buildSearchURL(query string) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	// TODO: replace with the provider's real query parameters.
	params.Add("q", query)
	params.Add("limit", fmt.Sprintf("%d", h.config.MaxResults))
	params.Add("key", h.config.APIKey)
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func (h *Handler) processResults(items []searchItem) []{{ .Result }} {
	result := make([]{{ .Result }}, 0, len(items))
	for _, item := range items {
		if len(result) >= h.config.MaxResults {
			break
		}
		if item.Title == "" {
			continue
		}
		result = append(result, {{ .Result }}{
			Title: item.Title,
			Link:  item.Link,
		})
	}
	return result
}
`

const testTemplate = `// internal/providers/{{ .Name }}/handler_test.go
package {{ .Name }}

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

func TestHandler_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		body, _ := json.Marshal(map[string]interface{}{
			"items": []map[string]interface{}{
				{"title": "First", "link": "https://example.com/1"},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer server.Close()

	handler := NewHandler(createTestConfig(server.URL), NewTestLogger(t))

	result, err := handler.Search(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "First", result[0].Title)
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

	result, err := handler.Search(context.Background(), "slow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, Err{{ .TypeName }}SearchTimeout))
	assert.Nil(t, result)
}
`

func main() {
	name := flag.String("name", "", "Provider package name (e.g., deezer)")
	result := flag.String("result", "", "Record type the adapter emits (e.g., Track)")
	typeName := flag.String("type", "", "Exported identifier prefix (default: capitalized name)")
	display := flag.String("display", "", "Human-readable provider name (default: capitalized name)")
	outputDir := flag.String("output", "./internal/providers/", "Output directory for the generated adapter")
	flag.Parse()

	if *name == "" || *result == "" {
		fmt.Println("Usage: provider-generator --name <package> --result <Type> [--type <Prefix>] [--display <Name>] [--output <dir>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/provider-generator/main.go --name deezer --result Track")
		os.Exit(1)
	}

	// Package names carry no separators.
	pkg := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(*name, "-", ""), "_", ""))

	data := ProviderData{
		Name:      pkg,
		TypeName:  *typeName,
		Display:   *display,
		Result:    upperFirst(*result),
		ResultVar: strings.ToLower(*result),
		Code:      strings.ToUpper(pkg),
	}
	if data.TypeName == "" {
		data.TypeName = upperFirst(pkg)
	}
	if data.Display == "" {
		data.Display = upperFirst(pkg)
	}

	providerDir := filepath.Join(*outputDir, pkg)
	if err := os.MkdirAll(providerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	// Generate files
	templates := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}

	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		filePath := filepath.Join(providerDir, filename)
		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("✓ Generated %s\n", filePath)
	}

	fmt.Printf("\n✅ Provider scaffold generated successfully at: %s\n", providerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Match the wire structs in models.go to the provider's API reference\n")
	fmt.Printf("  2. Point buildSearchURL at the real endpoint and parameters\n")
	fmt.Printf("  3. Move the %s type into internal/models once the planner consumes it\n", data.Result)
	fmt.Printf("  4. Add a searcher interface and fan-out goroutine in internal/vibe/planner\n")
	fmt.Printf("  5. Wire the adapter's settings into internal/common/config and cmd/vibe-server\n")
}
