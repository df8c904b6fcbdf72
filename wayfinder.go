package wayfinder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/agent"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Explorer is the high-level entry point of the library.
// It configures the solver and, optionally, persists every solution it produces.
type Explorer struct {
	strategy domain.Strategy
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	store    ports.SolutionStore
	verify   bool
	drawing  string
	now      func() time.Time
}

// Option defines a functional option for configuring the Explorer.
type Option func(*Explorer)

// WithStrategy selects the traversal order (default: breadth-first).
func WithStrategy(strategy domain.Strategy) Option {
	return func(e *Explorer) {
		e.strategy = strategy
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Explorer) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithStore persists every solution after it is produced.
func WithStore(store ports.SolutionStore) Option {
	return func(e *Explorer) {
		e.store = store
	}
}

// WithVerifySensing re-checks already known sides of each visited cell and
// aborts when the environment contradicts itself.
func WithVerifySensing(verify bool) Option {
	return func(e *Explorer) {
		e.verify = verify
	}
}

// New initializes an Explorer.
func New(opts ...Option) *Explorer {
	e := &Explorer{strategy: domain.BreadthFirst, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Store returns the configured solution store, or nil.
func (e *Explorer) Store() ports.SolutionStore {
	return e.store
}

// Solve explores env from its current position until the goal is found or
// every reachable cell has been visited. Options override the Explorer's
// configuration for this call only.
//
// An unreachable goal is not an error: the solution reports StatusExhausted and
// Solution.Err returns domain.ErrNoSolution.
func (e *Explorer) Solve(ctx context.Context, env ports.Agent, opts ...Option) (*domain.Solution, error) {
	cfg := *e
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.strategy == "" {
		cfg.strategy = domain.BreadthFirst
	}
	if cfg.strategy != domain.BreadthFirst && cfg.strategy != domain.DepthFirst {
		return nil, fmt.Errorf("unknown strategy %q", cfg.strategy)
	}

	id := uuid.NewString()
	logger := cfg.logger.With("solution", id, "strategy", cfg.strategy)
	handle := agent.For(env)
	solver := runtime.NewSolver(
		runtime.WithStrategy(cfg.strategy),
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(cfg.hooks),
		runtime.WithVerifySensing(cfg.verify),
	)

	started := cfg.now()
	run, err := solver.Solve(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	path, err := run.Path()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	stats := run.Stats()
	stats.FailedMoves = handle.FailedMoves()
	sol := &domain.Solution{
		ID:         id,
		Strategy:   cfg.strategy,
		Status:     run.Status,
		Goal:       run.Goal,
		Path:       path,
		Visits:     run.Visits,
		Tree:       run.Parents.Tree(),
		Stats:      stats,
		Maze:       cfg.drawing,
		StartedAt:  started,
		FinishedAt: cfg.now(),
	}
	logger.Info("solve finished", "status", sol.Status, "path", len(sol.Path), "visited", stats.Visited, "moves", stats.Moves)

	if cfg.store != nil {
		if err := cfg.store.Save(ctx, sol); err != nil {
			return sol, fmt.Errorf("save solution %s: %w", sol.ID, err)
		}
	}
	return sol, nil
}

// SolveText parses a text maze and solves it from its start mark.
func (e *Explorer) SolveText(ctx context.Context, text string, opts ...Option) (*domain.Solution, error) {
	maze, err := textmaze.Parse(text)
	if err != nil {
		return nil, err
	}
	// The drawing is attached before saving so stored solutions can be rendered.
	drawing := strings.Join(maze.Rows(), "\n") + "\n"
	return e.Solve(ctx, maze, append(opts, func(e *Explorer) { e.drawing = drawing })...)
}
