package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/transport/middleware"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

const testToken = "good-token"

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type pingerStub struct{}

func (pingerStub) Ping(context.Context) error { return nil }

type testServer struct {
	auth        *authServiceMock
	entries     *entryServiceMock
	aggregation *aggregationServiceMock
	social      *socialServiceMock
	enrichment  *enrichmentServiceMock
	uploadsDir  string
	handler     http.Handler
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithLimits(t, config.RateLimitConfig{AuthPerMinute: 1000, AIPerMinute: 1000})
}

func newTestServerWithLimits(t *testing.T, limits config.RateLimitConfig) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	ts := &testServer{
		auth:        &authServiceMock{},
		entries:     &entryServiceMock{},
		aggregation: &aggregationServiceMock{},
		social:      &socialServiceMock{},
		enrichment:  &enrichmentServiceMock{},
		uploadsDir:  t.TempDir(),
	}

	audioURL := PublicAudioURL("/uploads")
	handlers := Handlers{
		Auth:        NewAuthHandler(ts.auth, logger),
		Entries:     NewEntryHandler(ts.entries, audioURL, 1<<20, logger),
		Aggregation: NewAggregationHandler(ts.aggregation, logger),
		Social:      NewSocialHandler(ts.social, audioURL, logger),
		Enrichment:  NewEnrichmentHandler(ts.enrichment, logger),
		Health:      NewHealthHandler(pingerStub{}, nil, "test"),
	}
	tokens := &tokenValidatorMock{
		token:    testToken,
		identity: ctxutil.Identity{ID: testUserID, Email: "owner@example.com"},
	}
	cfg := RouterConfig{
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         60,
		},
		RateLimit:   limits,
		UploadsDir:  ts.uploadsDir,
		UploadsPath: "/uploads",
	}

	ts.handler = NewRouter(handlers, tokens, limiter, cfg, logger)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doJSON(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return ts.do(t, method, path, body, "application/json", token)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
