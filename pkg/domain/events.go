package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventVisit    EventType = "visit"
	EventDiscover EventType = "discover"
	EventMove     EventType = "move"
	EventFinish   EventType = "finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Strategy  Strategy  `json:"strategy"`
}

// CellEvent reports a visit to, or the discovery of, a cell.
type CellEvent struct {
	EventBase
	Cell   CellID `json:"cell"`
	Parent CellID `json:"parent"`
	Depth  int    `json:"depth"`
}

// MoveEvent reports one physical move of the agent.
type MoveEvent struct {
	EventBase
	From      CellID    `json:"from"`
	To        CellID    `json:"to"`
	Direction Direction `json:"direction"`
	Backtrack bool      `json:"backtrack,omitempty"`
}

// FinishEvent reports the terminal state of a solve.
type FinishEvent struct {
	EventBase
	Status   Status        `json:"status"`
	Stats    Stats         `json:"stats"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnVisit    func(context.Context, *CellEvent)
	OnDiscover func(context.Context, *CellEvent)
	OnMove     func(context.Context, *MoveEvent)
	OnFinish   func(context.Context, *FinishEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnVisit:    chain(h.OnVisit, other.OnVisit),
		OnDiscover: chain(h.OnDiscover, other.OnDiscover),
		OnMove:     chain(h.OnMove, other.OnMove),
		OnFinish:   chain(h.OnFinish, other.OnFinish),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
