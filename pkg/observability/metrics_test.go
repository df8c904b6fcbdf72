package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	explorer := wayfinder.New(wayfinder.WithLifecycleHooks(m.Hooks()))

	sol, err := explorer.SolveText(context.Background(), "+F S  +", wayfinder.WithStrategy(domain.BreadthFirst))
	require.NoError(t, err)
	_, err = explorer.SolveText(context.Background(), "S+F", wayfinder.WithStrategy(domain.DepthFirst))
	require.NoError(t, err)

	assert.Equal(t, float64(sol.Stats.Visited), testutil.ToFloat64(m.Visits.WithLabelValues("bfs")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Moves.WithLabelValues("bfs", "backtrack")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Moves.WithLabelValues("bfs", "forward")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Solves.WithLabelValues("bfs", "found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Solves.WithLabelValues("dfs", "exhausted")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Solves.WithLabelValues("bfs", "found").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wayfinder_solves_total{status="found",strategy="bfs"} 1`)

	err := testutil.CollectAndCompare(m.Solves, strings.NewReader(`
# HELP wayfinder_solves_total Total number of finished solves by outcome
# TYPE wayfinder_solves_total counter
wayfinder_solves_total{status="found",strategy="bfs"} 1
`))
	assert.NoError(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	m := observability.NewMetrics()
	hooks := observability.LogHooks(logger).Merge(m.Hooks())

	_, err := wayfinder.New(wayfinder.WithLifecycleHooks(hooks)).SolveText(context.Background(), "S F")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "cell_visit")
	assert.Contains(t, out, "agent_move")
	assert.Contains(t, out, "solve_finished")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Solves.WithLabelValues("bfs", "found")))
}
