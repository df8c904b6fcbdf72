package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event. Visits, discoveries
// and moves are logged at Debug, the finish at Info (Error when it failed).
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVisit: func(ctx context.Context, e *domain.CellEvent) {
			logger.DebugContext(ctx, "cell_visit", "cell", e.Cell, "depth", e.Depth)
		},
		OnDiscover: func(ctx context.Context, e *domain.CellEvent) {
			logger.DebugContext(ctx, "cell_discover", "cell", e.Cell, "parent", e.Parent)
		},
		OnMove: func(ctx context.Context, e *domain.MoveEvent) {
			logger.DebugContext(ctx, "agent_move", "from", e.From, "to", e.To, "direction", e.Direction, "backtrack", e.Backtrack)
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, "solve_failed", "err", e.Err, "visited", e.Stats.Visited)
				return
			}
			logger.InfoContext(ctx, "solve_finished",
				"status", e.Status,
				"peeks", e.Stats.Peeks,
				"moves", e.Stats.Moves,
				"discovered", e.Stats.Discovered,
				"duration", e.Duration,
			)
		},
	}
}
