package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Solver drives the exploration loop: pop the next frontier cell, walk the agent
// there, sense its unresolved sides, register what was found, repeat until the
// goal is seen or the frontier runs dry.
type Solver struct {
	strategy domain.Strategy
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	verify   bool
	now      func() time.Time
}

// Option configures a Solver.
type Option func(*Solver)

// WithStrategy selects breadth-first (default) or depth-first traversal.
func WithStrategy(strategy domain.Strategy) Option {
	return func(s *Solver) {
		s.strategy = strategy
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Solver) {
		s.hooks = hooks
	}
}

// WithVerifySensing makes the solver re-peek sides that are already resolved
// and fail when the environment answers differently.
func WithVerifySensing(verify bool) Option {
	return func(s *Solver) {
		s.verify = verify
	}
}

// NewSolver creates a solver.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		strategy: domain.BreadthFirst,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy returns the traversal order in use.
func (s *Solver) Strategy() domain.Strategy {
	return s.strategy
}

// Run is the state of one solve. It is owned by a single caller.
type Run struct {
	Status    domain.Status
	Goal      domain.CellID
	Graph     *Graph
	Frontier  *Frontier
	Parents   *ParentMap
	Navigator *Navigator
	Visits    []domain.CellID

	agent ports.Agent
	peeks int
}

// Path returns the steps from the start to the goal.
func (r *Run) Path() ([]domain.Step, error) {
	if r.Status != domain.StatusFound {
		return nil, nil
	}
	return r.Parents.PathToRoot(r.Goal)
}

// Stats returns the counters of the run so far.
func (r *Run) Stats() domain.Stats {
	return domain.Stats{
		Peeks:      r.peeks,
		Moves:      r.Navigator.Moves(),
		Discovered: r.Graph.Len(),
		Visited:    len(r.Visits),
	}
}

func (r *Run) sense(direction domain.Direction) domain.Outcome {
	r.peeks++
	return r.agent.Peek(direction)
}

// Start creates the run state: the start cell is discovered, queued and occupied.
func (s *Solver) Start(ctx context.Context, agent ports.Agent) *Run {
	run := &Run{
		Status:   domain.StatusExploring,
		Graph:    NewGraph(),
		Frontier: NewFrontier(s.strategy),
		Parents:  NewParentMap(domain.Origin),
		agent:    agent,
	}
	run.Graph.Discover(domain.Origin)
	run.Frontier.Push(domain.Origin)
	run.Navigator = NewNavigator(agent, run.Graph, run.Parents, s.logger, func(from, to domain.CellID, d domain.Direction, backtrack bool) {
		if s.hooks.OnMove != nil {
			s.hooks.OnMove(ctx, &domain.MoveEvent{
				EventBase: s.event(domain.EventMove),
				From:      from,
				To:        to,
				Direction: d,
				Backtrack: backtrack,
			})
		}
	})
	return run
}

// Solve runs the exploration to a terminal state. An exhausted frontier is not
// an error; the returned run reports StatusExhausted.
func (s *Solver) Solve(ctx context.Context, agent ports.Agent) (*Run, error) {
	started := s.now()
	run := s.Start(ctx, agent)
	s.logger.Debug("solve started", "strategy", s.strategy)

	var err error
	for !run.Status.Terminal() {
		if err = s.Step(ctx, run); err != nil {
			break
		}
	}

	if err != nil {
		s.logger.Error("solve aborted", "err", err, "visited", len(run.Visits))
	} else {
		s.logger.Debug("solve finished", "status", run.Status, "goal", run.Goal, "visited", len(run.Visits), "moves", run.Navigator.Moves())
	}
	if s.hooks.OnFinish != nil {
		s.hooks.OnFinish(ctx, &domain.FinishEvent{
			EventBase: s.event(domain.EventFinish),
			Status:    run.Status,
			Stats:     run.Stats(),
			Duration:  s.now().Sub(started),
			Err:       err,
		})
	}
	return run, err
}

// Step performs one transition of the state machine: it visits the next
// frontier cell, or marks the run exhausted when there is none.
func (s *Solver) Step(ctx context.Context, run *Run) error {
	if run.Status.Terminal() {
		return nil
	}
	next, ok := run.Frontier.Pop()
	if !ok {
		run.Status = domain.StatusExhausted
		return nil
	}
	return s.visit(ctx, run, next)
}

func (s *Solver) visit(ctx context.Context, run *Run, cell domain.CellID) error {
	if err := run.Navigator.MoveTo(cell); err != nil {
		return err
	}
	run.Visits = append(run.Visits, cell)

	depth, err := run.Parents.Depth(cell)
	if err != nil {
		return &domain.SolveError{Op: "path", Cell: cell, Err: err}
	}
	s.logger.Debug("visiting", "cell", cell, "depth", depth, "pending", run.Frontier.Len())
	if s.hooks.OnVisit != nil {
		parent, _ := run.Parents.Get(cell)
		s.hooks.OnVisit(ctx, &domain.CellEvent{EventBase: s.event(domain.EventVisit), Cell: cell, Parent: parent.Parent, Depth: depth})
	}

	// The side leading back to the parent was resolved when this cell was
	// discovered, so it is skipped here.
	slots, _ := run.Graph.Neighbors(cell)
	for _, d := range domain.Directions {
		if slots[d].Resolved() {
			if s.verify {
				if err := s.verifySlot(run, cell, d, slots[d]); err != nil {
					return err
				}
			}
			continue
		}

		outcome := run.sense(d)
		neighbor := cell.Step(d)

		switch outcome {
		case domain.Wall:
			if err := s.link(run, cell, d, domain.BlockedSlot()); err != nil {
				return err
			}

		case domain.Open, domain.Goal:
			isNew := run.Graph.Discover(neighbor)
			if !isNew && outcome == domain.Goal {
				return &domain.SolveError{
					Op:        "sense",
					Cell:      cell,
					Direction: d,
					Err:       fmt.Errorf("%w: known cell %s now reports goal", domain.ErrEnvironmentInconsistent, neighbor),
				}
			}
			if err := s.link(run, cell, d, domain.LinkedSlot(neighbor)); err != nil {
				return err
			}
			if !isNew {
				continue
			}

			run.Parents.Record(neighbor, cell, d)
			if s.hooks.OnDiscover != nil {
				s.hooks.OnDiscover(ctx, &domain.CellEvent{EventBase: s.event(domain.EventDiscover), Cell: neighbor, Parent: cell, Depth: depth + 1})
			}

			if outcome == domain.Goal {
				// Remaining sides of this cell stay unresolved.
				run.Status = domain.StatusFound
				run.Goal = neighbor
				s.logger.Debug("goal found", "cell", neighbor, "from", cell, "direction", d)
				return nil
			}
			run.Frontier.Push(neighbor)

		default:
			return &domain.SolveError{
				Op:        "sense",
				Cell:      cell,
				Direction: d,
				Err:       fmt.Errorf("%w: unknown outcome %s", domain.ErrEnvironmentInconsistent, outcome),
			}
		}
	}
	return nil
}

// link registers a side of cell and, when the neighbor across it is already
// discovered, the matching side of the neighbor.
func (s *Solver) link(run *Run, cell domain.CellID, direction domain.Direction, slot domain.Slot) error {
	if err := run.Graph.Register(cell, direction, slot); err != nil {
		return &domain.SolveError{Op: "sense", Cell: cell, Direction: direction, Err: fmt.Errorf("%w: %w", domain.ErrEnvironmentInconsistent, err)}
	}

	neighbor := cell.Step(direction)
	if !run.Graph.Has(neighbor) {
		return nil
	}
	back := domain.BlockedSlot()
	if slot.Kind == domain.Linked {
		back = domain.LinkedSlot(cell)
	}
	if err := run.Graph.Register(neighbor, direction.Reverse(), back); err != nil {
		return &domain.SolveError{Op: "sense", Cell: cell, Direction: direction, Err: fmt.Errorf("%w: %w", domain.ErrEnvironmentInconsistent, err)}
	}
	return nil
}

func (s *Solver) verifySlot(run *Run, cell domain.CellID, direction domain.Direction, slot domain.Slot) error {
	outcome := run.sense(direction)
	consistent := (slot.Kind == domain.Blocked && outcome == domain.Wall) ||
		(slot.Kind == domain.Linked && outcome == domain.Open)
	if consistent {
		return nil
	}
	return &domain.SolveError{
		Op:        "sense",
		Cell:      cell,
		Direction: direction,
		Err:       fmt.Errorf("%w: side recorded as %s now reports %s", domain.ErrEnvironmentInconsistent, slot, outcome),
	}
}

func (s *Solver) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: s.now(), Type: t, Strategy: s.strategy}
}
