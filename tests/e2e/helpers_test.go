//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/learned"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/testhelper"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/webcache"
	"github.com/acrodocs/acrodocs-backend/internal/config"
	"github.com/acrodocs/acrodocs-backend/internal/lookup"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
	"github.com/acrodocs/acrodocs-backend/internal/service/extraction"
	"github.com/acrodocs/acrodocs-backend/internal/transport/middleware"
	"github.com/acrodocs/acrodocs-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool

	// webQueries counts how often the stub web source was asked.
	webQueries *atomic.Int64
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// stubWebSource stands in for the external knowledge sources. It answers a
// fixed set of terms so E2E runs stay hermetic.
type stubWebSource struct {
	calls   *atomic.Int64
	answers map[string]string
}

func (s *stubWebSource) Name() string { return "stub-web" }

func (s *stubWebSource) Query(_ context.Context, term string, _ provider.Hints) ([]provider.Snippet, error) {
	s.calls.Add(1)
	def, ok := s.answers[term]
	if !ok {
		return nil, nil
	}
	return []provider.Snippet{{
		Title:     def,
		Text:      def,
		Source:    "web:en.wikipedia.org",
		BaseScore: 0.58,
	}}, nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	learnedRepo := learned.New(pool)
	cacheRepo := webcache.New(pool)

	calls := &atomic.Int64{}
	stub := &stubWebSource{
		calls: calls,
		answers: map[string]string{
			"VQX": "Vector Quantization Exchange",
		},
	}

	lookupSvc := lookup.New(cacheRepo, []lookup.Source{stub}, logger)
	extractionSvc := extraction.NewService(logger, learnedRepo, lookupSvc, config.ExtractionConfig{
		Workers:          2,
		MaxWebCandidates: 5,
		MaxUploadBytes:   1 << 20,
	})

	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(pool, "test-version")
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	extractHandler := rest.NewExtractHandler(extractionSvc, 1<<20, "en", logger)
	mux.HandleFunc("POST /api/v1/extract", extractHandler.Extract)
	mux.HandleFunc("POST /api/v1/extract/csv", extractHandler.ExtractCSV)
	mux.HandleFunc("POST /api/v1/learn", extractHandler.Learn)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:        srv.URL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		Pool:       pool,
		webQueries: calls,
	}
}

// postJSON posts a JSON body and decodes the JSON response into out.
func (ts *testServer) postJSON(t *testing.T, path string, body any, out any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
	}
	return resp
}
