//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langarchive/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/langarchive/internal/adapter/storage/local"
	"github.com/heartmarshall/langarchive/internal/app"
	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/internal/transport/middleware"
)

// ---------------------------------------------------------------------------
// fakeAI stands in for the text-generation collaborator.
// ---------------------------------------------------------------------------

type fakeAI struct {
	mu      sync.Mutex
	text    string
	payload json.RawMessage
	err     error
	calls   int
}

func (f *fakeAI) GenerateText(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.text, f.err
}

func (f *fakeAI) GenerateJSON(context.Context, string, domain.OutputSchema) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.payload, f.err
}

func (f *fakeAI) Configured() bool { return true }

func (f *fakeAI) set(text string, payload string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.payload = json.RawMessage(payload)
	f.err = err
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	AI     *fakeAI
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "e2e-secret-at-least-32-characters-long",
			JWTIssuer:  "langarchive-e2e",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		Storage: config.StorageConfig{
			Driver:     config.StorageLocal,
			PublicPath: "/uploads",
		},
		Entries: config.EntriesConfig{
			RecentViewsLimit: 20,
			MaxUploadBytes:   1 << 20,
		},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 1000, AIPerMinute: 1000},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := local.New(t.TempDir())
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	ai := &fakeAI{}
	handler := app.NewHTTPHandler(testConfig(), app.Deps{
		Pool:       pool,
		Audio:      store,
		AI:         ai,
		UploadsDir: store.Dir(),
		Version:    "test-version",
	}, limiter, logger)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool, AI: ai}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) request(t *testing.T, method, path string, body io.Reader, contentType, token string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// doJSON sends payload as JSON and decodes the response body into a map
// (or a list when the body is an array).
func (ts *testServer) doJSON(t *testing.T, method, path string, payload any, token string) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	status, data := ts.request(t, method, path, body, "application/json", token)
	var out map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	}
	return status, out
}

func (ts *testServer) getList(t *testing.T, path, token string) (int, []map[string]any) {
	t.Helper()

	status, data := ts.request(t, http.MethodGet, path, nil, "", token)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	return status, out
}

// register creates an account through the API and returns its token and id.
func (ts *testServer) register(t *testing.T) (string, string) {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
	status, body := ts.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": "correct horse",
	}, "")
	require.Equal(t, http.StatusCreated, status, body)

	user := body["user"].(map[string]any)
	return body["token"].(string), user["id"].(string)
}

// createEntry records a word through the API and returns the response body.
func (ts *testServer) createEntry(t *testing.T, token string, fields map[string]any) map[string]any {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/entries", fields, token)
	require.Equal(t, http.StatusCreated, status, body)
	return body
}
