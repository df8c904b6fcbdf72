package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// MoveFunc observes every physical move issued by a Navigator.
type MoveFunc func(from, to domain.CellID, direction domain.Direction, backtrack bool)

// Navigator moves the agent between discovered cells using only edges the graph
// records as open. It owns the agent's position.
type Navigator struct {
	agent    ports.Agent
	graph    *Graph
	parents  *ParentMap
	position domain.CellID
	moves    int
	logger   *slog.Logger
	onMove   MoveFunc
}

// NewNavigator creates a navigator positioned at the root of parents.
func NewNavigator(agent ports.Agent, graph *Graph, parents *ParentMap, logger *slog.Logger, onMove MoveFunc) *Navigator {
	return &Navigator{
		agent:    agent,
		graph:    graph,
		parents:  parents,
		position: parents.Root(),
		logger:   logger,
		onMove:   onMove,
	}
}

// Position returns the cell the agent currently occupies.
func (n *Navigator) Position() domain.CellID {
	return n.position
}

// Moves returns the number of moves issued so far.
func (n *Navigator) Moves() int {
	return n.moves
}

// MoveTo walks the agent to target. A direct edge is taken when one is known;
// otherwise the agent climbs the spanning tree towards the lowest common
// ancestor of its position and target, then descends along target's lineage.
func (n *Navigator) MoveTo(target domain.CellID) error {
	if target == n.position {
		return nil
	}
	if !n.graph.Has(target) {
		return &domain.SolveError{
			Op:   "navigate",
			Cell: n.position,
			Err:  fmt.Errorf("target %s was never discovered: %w", target, domain.ErrGraphCorrupted),
		}
	}
	if d, ok := n.graph.DirectionTo(n.position, target); ok {
		return n.step(d, target, false)
	}

	lineage, err := n.parents.Lineage(target)
	if err != nil {
		return &domain.SolveError{Op: "navigate", Cell: n.position, Err: err}
	}
	index := make(map[domain.CellID]int, len(lineage))
	for i, c := range lineage {
		index[c] = i
	}

	// Climb until the position is an ancestor of target.
	for {
		if _, ok := index[n.position]; ok {
			break
		}
		if d, ok := n.graph.DirectionTo(n.position, target); ok {
			return n.step(d, target, false)
		}
		e, ok := n.parents.Get(n.position)
		if !ok {
			return &domain.SolveError{
				Op:   "navigate",
				Cell: n.position,
				Err:  fmt.Errorf("no parent to backtrack to towards %s: %w", target, domain.ErrGraphCorrupted),
			}
		}
		if err := n.step(e.Direction.Reverse(), e.Parent, true); err != nil {
			return err
		}
	}

	// Descend into target's subtree.
	for _, c := range lineage[index[n.position]+1:] {
		if d, ok := n.graph.DirectionTo(n.position, target); ok {
			return n.step(d, target, false)
		}
		e, _ := n.parents.Get(c)
		if err := n.step(e.Direction, c, false); err != nil {
			return err
		}
	}
	return nil
}

// step moves across one edge the graph records as linking the position to next.
func (n *Navigator) step(direction domain.Direction, next domain.CellID, backtrack bool) error {
	slots, _ := n.graph.Neighbors(n.position)
	if s := slots[direction]; s.Kind != domain.Linked || s.Cell != next {
		return &domain.SolveError{
			Op:        "navigate",
			Cell:      n.position,
			Direction: direction,
			Err:       fmt.Errorf("no known open edge to %s (slot is %s): %w", next, s, domain.ErrGraphCorrupted),
		}
	}

	if err := n.agent.AttemptMove(direction); err != nil {
		return &domain.SolveError{
			Op:        "move",
			Cell:      n.position,
			Direction: direction,
			Err:       fmt.Errorf("%w: %w", domain.ErrEnvironmentInconsistent, err),
		}
	}

	from := n.position
	n.position = next
	n.moves++
	n.logger.Debug("moved", "from", from, "to", next, "direction", direction, "backtrack", backtrack)
	if n.onMove != nil {
		n.onMove(from, next, direction, backtrack)
	}
	return nil
}
