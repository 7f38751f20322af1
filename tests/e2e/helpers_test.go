//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akulichev/coderecall-backend/internal/adapter/provider/problemhub"
	"github.com/akulichev/coderecall-backend/internal/adapter/sqlite"
	"github.com/akulichev/coderecall-backend/internal/config"
	"github.com/akulichev/coderecall-backend/internal/domain"
	catalogsvc "github.com/akulichev/coderecall-backend/internal/service/catalog"
	"github.com/akulichev/coderecall-backend/internal/service/schedule"
	"github.com/akulichev/coderecall-backend/internal/service/stats"
	"github.com/akulichev/coderecall-backend/internal/service/transfer"
	"github.com/akulichev/coderecall-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// Catalog fixture served by the stub upstream.
// ---------------------------------------------------------------------------

const catalogListingJSON = `[
	{"slug": "blind75", "accentColor": "#f89f1b"},
	{"slug": "neetcode150", "accentColor": "#00af9b"}
]`

var catalogFixtures = map[string]string{
	"blind75": `{
		"slug": "blind75",
		"groups": [
			{
				"label": {"en": "Arrays & Hashing", "zh": "数组与哈希"},
				"problems": [
					{"id": "two-sum", "title": {"en": "Two Sum", "zh": "两数之和"}, "slug": "two-sum", "difficulty": "EASY"},
					{"id": "contains-duplicate", "title": {"en": "Contains Duplicate"}, "slug": "contains-duplicate", "difficulty": "EASY"}
				]
			},
			{
				"label": {"en": "Sliding Window"},
				"problems": [
					{"id": "longest-substring", "title": {"en": "Longest Substring Without Repeating Characters"}, "slug": "longest-substring-without-repeating-characters", "difficulty": "MEDIUM"}
				]
			}
		]
	}`,
	"neetcode150": `{
		"slug": "neetcode150",
		"groups": [
			{
				"label": {"en": "Arrays & Hashing"},
				"problems": [
					{"id": "two-sum", "title": {"en": "Two Sum"}, "slug": "two-sum", "difficulty": "EASY"},
					{"id": "valid-anagram", "title": {"en": "Valid Anagram"}, "slug": "valid-anagram", "difficulty": "EASY"}
				]
			}
		]
	}`,
}

func newStubCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalogs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, catalogListingJSON)
	})
	mux.HandleFunc("GET /catalogs/{slug}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := catalogFixtures[r.PathValue("slug")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message": "catalog not found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// setupTestServer wires a sqlite-backed stack against a stub catalog
// upstream and serves it over httptest.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	upstream := newStubCatalogServer(t)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "coderecall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	provider := problemhub.NewProvider(upstream.URL, 5*time.Second, logger)

	scheduleService, err := schedule.NewService(logger, store, domain.DefaultIntervalTable)
	require.NoError(t, err)
	catalogService := catalogsvc.NewService(logger, provider, store)
	statsService := stats.NewService(logger, catalogService, time.UTC, 1)
	transferService := transfer.NewService(logger, store)

	handlers := rest.Handlers{
		Progress: rest.NewProgressHandler(scheduleService, logger),
		Catalog:  rest.NewCatalogHandler(catalogService, logger),
		Stats:    rest.NewStatsHandler(statsService, logger),
		Transfer: rest.NewTransferHandler(transferService, logger),
		Health:   rest.NewHealthHandler(store, "e2e-test"),
	}

	router := rest.NewRouter(handlers, logger, config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowedHeaders: "Content-Type",
		MaxAge:         86400,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client()}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) do(t *testing.T, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// doJSON performs a request and decodes the response body into dst,
// requiring the given status code.
func (ts *testServer) doJSON(t *testing.T, method, path string, payload any, wantStatus int, dst any) {
	t.Helper()

	resp, raw := ts.do(t, method, path, payload)
	require.Equal(t, wantStatus, resp.StatusCode, "unexpected status for %s %s: %s", method, path, raw)
	if dst != nil {
		require.NoError(t, json.Unmarshal(raw, dst), "decode %s %s response: %s", method, path, raw)
	}
}

// eventBody builds a learn/review request body with an explicit date.
func eventBody(plan string, at time.Time) map[string]any {
	body := map[string]any{}
	if plan != "" {
		body["plan"] = plan
	}
	body["date"] = at.Format(time.RFC3339)
	return body
}

func day(t *testing.T, d int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func problemPath(id, op string) string {
	return fmt.Sprintf("/api/problems/%s/%s", id, op)
}
