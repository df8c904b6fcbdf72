package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	adapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
)

const maze = "+++++\n+S  +\n+++ +\n+F  +\n+++++\n"

func newServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	metrics := observability.NewMetrics()
	explorer := wayfinder.New(
		wayfinder.WithStore(store),
		wayfinder.WithLifecycleHooks(metrics.Hooks()),
	)
	srv := httptest.NewServer(adapter.NewHandler(&adapter.Server{
		Explorer: explorer,
		Store:    store,
		Metrics:  metrics.Handler(),
		Logger:   logging.NewNop(),
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func solve(t *testing.T, srv *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/solve"+query, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSolve_JSON(t *testing.T) {
	srv, store := newServer(t)

	resp := solve(t, srv, "?strategy=dfs", maze)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var sol domain.Solution
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sol))
	assert.Equal(t, domain.StatusFound, sol.Status)
	assert.Equal(t, domain.DepthFirst, sol.Strategy)
	assert.Len(t, sol.Path, 6)

	stored, err := store.Load(t.Context(), sol.ID)
	require.NoError(t, err)
	assert.Equal(t, sol.Path, stored.Path)
}

func TestSolve_Text(t *testing.T) {
	srv, _ := newServer(t)

	resp := solve(t, srv, "?format=text", maze)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "+++++\n+S..+\n+++.+\n+F..+\n+++++\n", string(body))
}

func TestSolve_BadRequests(t *testing.T) {
	srv, _ := newServer(t)

	assert.Equal(t, http.StatusBadRequest, solve(t, srv, "", "no start").StatusCode)
	assert.Equal(t, http.StatusBadRequest, solve(t, srv, "?strategy=astar", maze).StatusCode)
	assert.Equal(t, http.StatusBadRequest, solve(t, srv, "?format=png", maze).StatusCode)
	assert.Equal(t, http.StatusBadRequest, solve(t, srv, "", "S \xff F").StatusCode)
}

func TestSolve_UnknownFormatIsNotStored(t *testing.T) {
	srv, store := newServer(t)

	resp := solve(t, srv, "?format=png", maze)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ids, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSolve_BodyTooLarge(t *testing.T) {
	srv, store := newServer(t)

	body := strings.Repeat("+", adapter.MaxMazeBytes+1)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/solve", strings.NewReader(body))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.Config.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	ids, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSolve_BodyReadError(t *testing.T) {
	srv, _ := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/solve", failingReader{})
	rec := httptest.NewRecorder()
	srv.Config.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolutions(t *testing.T) {
	srv, _ := newServer(t)

	var sol domain.Solution
	require.NoError(t, json.NewDecoder(solve(t, srv, "", maze).Body).Decode(&sol))

	resp, err := http.Get(srv.URL + "/solutions")
	require.NoError(t, err)
	defer resp.Body.Close()
	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	assert.Equal(t, []string{sol.ID}, ids)

	resp, err = http.Get(srv.URL + "/solutions/" + sol.ID + "?format=mermaid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "graph LR"))

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/solutions/"+sol.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/solutions/" + sol.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newServer(t)
	solve(t, srv, "", maze)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wayfinder_solves_total{status="found",strategy="bfs"} 1`)
}

func TestNoStore(t *testing.T) {
	srv := httptest.NewServer(adapter.NewHandler(&adapter.Server{Explorer: wayfinder.New()}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/solutions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
