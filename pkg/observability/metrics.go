package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Metrics holds the Prometheus collectors for solves. Each instance owns its
// registry so several can coexist (one per test, one per server).
type Metrics struct {
	Registry *prometheus.Registry

	Visits      *prometheus.CounterVec
	Discoveries *prometheus.CounterVec
	Moves       *prometheus.CounterVec
	Solves      *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	PathLength  *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Visits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_cell_visits_total",
				Help: "Total number of cells the agent was walked to",
			},
			[]string{"strategy"},
		),
		Discoveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_cell_discoveries_total",
				Help: "Total number of cells discovered by sensing",
			},
			[]string{"strategy"},
		),
		Moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_moves_total",
				Help: "Total number of agent moves, split into forward and backtrack",
			},
			[]string{"strategy", "kind"},
		),
		Solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_solves_total",
				Help: "Total number of finished solves by outcome",
			},
			[]string{"strategy", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wayfinder_solve_duration_seconds",
				Help:    "Duration of solves",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"strategy"},
		),
		PathLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wayfinder_solve_moves",
				Help:    "Moves spent per solve",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"strategy"},
		),
	}
	m.Registry.MustRegister(m.Visits, m.Discoveries, m.Moves, m.Solves, m.Duration, m.PathLength)
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVisit: func(_ context.Context, e *domain.CellEvent) {
			m.Visits.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnDiscover: func(_ context.Context, e *domain.CellEvent) {
			m.Discoveries.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnMove: func(_ context.Context, e *domain.MoveEvent) {
			kind := "forward"
			if e.Backtrack {
				kind = "backtrack"
			}
			m.Moves.WithLabelValues(string(e.Strategy), kind).Inc()
		},
		OnFinish: func(_ context.Context, e *domain.FinishEvent) {
			status := string(e.Status)
			if e.Err != nil {
				status = "error"
			}
			m.Solves.WithLabelValues(string(e.Strategy), status).Inc()
			m.Duration.WithLabelValues(string(e.Strategy)).Observe(e.Duration.Seconds())
			m.PathLength.WithLabelValues(string(e.Strategy)).Observe(float64(e.Stats.Moves))
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
