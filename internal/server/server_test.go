package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/catalog"
	"github.com/matzehuels/ribbonpack/pkg/observability"
	"github.com/matzehuels/ribbonpack/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	logger := log.New(io.Discard)
	ts := httptest.NewServer(New(runner, logger, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	body := decode[map[string]string](t, resp.Body)
	assert.Equal(t, "ok", body["status"])
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	examples := decode[[]catalog.Example](t, resp.Body)
	assert.Len(t, examples, len(catalog.Names()))

	one, err := http.Get(ts.URL + "/api/catalog/pentagon")
	require.NoError(t, err)
	defer one.Body.Close()
	e := decode[catalog.Example](t, one.Body)
	assert.Equal(t, "pentagon", e.Name)

	missing, err := http.Get(ts.URL + "/api/catalog/dodecahedron")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	er := decode[errorResponse](t, missing.Body)
	assert.Equal(t, "NOT_FOUND", er.Code)
	assert.NotEmpty(t, er.RequestID)
}

func TestFunctions(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/functions")
	require.NoError(t, err)
	defer resp.Body.Close()
	fns := decode[[]string](t, resp.Body)
	assert.NotEmpty(t, fns)
}

func TestPack(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/pack", `{"example": "triangle", "formats": ["svg", "json"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[PackResponse](t, resp.Body)
	assert.Equal(t, "triangle", got.Name)
	assert.Equal(t, 24, got.Darts)
	assert.Len(t, got.Radii, got.Circles)
	assert.True(t, bytes.HasPrefix(got.Artifacts["svg"], []byte("<svg")))
	assert.Contains(t, string(got.Artifacts["json"]), `"name": "triangle"`)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/render/svg", `{"expr": "closure(polygon(3))", "layers": {"graph": true, "circles": true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Run-Id"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<circle ")
}

func TestPackErrors(t *testing.T) {
	ts := newTestServer(t, WithMaxBodySize(256))

	tests := []struct {
		name   string
		url    string
		body   string
		status int
		code   string
	}{
		{"malformed", "/api/pack", `{"example": `, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/api/pack", `{"exampel": "triangle"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"file source", "/api/pack", `{"file": "/etc/passwd"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no source", "/api/pack", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad expression", "/api/pack", `{"expr": "closure(vertex(3)"}`, http.StatusBadRequest, "INVALID_EXPRESSION"},
		{"unknown example", "/api/pack", `{"example": "dodecahedron"}`, http.StatusNotFound, "NOT_FOUND"},
		{"too large", "/api/pack", `{"expr": "` + strings.Repeat("x", 300) + `"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/api/render/gif", `{"example": "triangle"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			er := decode[errorResponse](t, resp.Body)
			assert.Equal(t, tt.code, er.Code)
			assert.NotEmpty(t, er.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/pack")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/api/catalog/nope"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.statuses)
}

func TestStats(t *testing.T) {
	plain := newTestServer(t)
	resp, err := http.Get(plain.URL + "/api/stats")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "stats are off by default")

	stats := observability.NewCounters()
	stats.Register()
	t.Cleanup(observability.Reset)
	ts := newTestServer(t, WithStats(stats))

	require.Equal(t, http.StatusOK, post(t, ts.URL+"/api/pack", `{"example": "triangle"}`).StatusCode)
	require.Equal(t, http.StatusNotFound, post(t, ts.URL+"/api/pack", `{"example": "nope"}`).StatusCode)

	resp, err = http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	got := decode[observability.Snapshot](t, resp.Body)
	assert.Equal(t, 2, got.Builds)
	assert.Equal(t, 1, got.Failures["build"])
	assert.Equal(t, 1, got.Packs)
	assert.Positive(t, got.Sweeps)
	assert.Equal(t, 1, got.Requests["2xx"])
	assert.Equal(t, 1, got.Requests["4xx"])
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, nil), log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
