package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the state of the solver state machine.
type Status string

const (
	StatusExploring Status = "exploring" // Frontier not yet exhausted, goal not yet seen
	StatusFound     Status = "found"     // Goal discovered (terminal)
	StatusExhausted Status = "exhausted" // Frontier empty without a goal (terminal)
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusFound || s == StatusExhausted
}

// Strategy selects the traversal order of the frontier.
type Strategy string

const (
	// BreadthFirst visits cells in non-decreasing distance from the start (FIFO frontier).
	// The resulting path is a shortest path.
	BreadthFirst Strategy = "bfs"
	// DepthFirst follows one branch as far as it goes before backtracking (LIFO frontier).
	DepthFirst Strategy = "dfs"
)

// ParseStrategy accepts "bfs", "dfs" and their long names.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth-first", "breadth_first":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depth_first":
		return DepthFirst, nil
	}
	return "", fmt.Errorf("unknown strategy %q (expected bfs or dfs)", s)
}

// Step is one element of a path: a cell and the direction taken from its parent to reach it.
type Step struct {
	Cell      CellID    `json:"cell"`
	Direction Direction `json:"direction"`
}

// Stats holds the physical cost of a solve.
type Stats struct {
	Peeks       int `json:"peeks"`
	Moves       int `json:"moves"`
	FailedMoves int `json:"failed_moves,omitempty"`
	Discovered  int `json:"discovered"`
	Visited     int `json:"visited"`
}

// Solution is the outcome of one solve.
type Solution struct {
	ID       string   `json:"id"`
	Strategy Strategy `json:"strategy"`
	Status   Status   `json:"status"`

	// Goal is meaningful only when Status is StatusFound.
	Goal CellID `json:"goal"`

	// Path leads from the start (excluded) to the goal (included).
	Path []Step `json:"path"`

	// Visits lists cells in the order they were visited.
	Visits []CellID `json:"visits,omitempty"`

	// Tree is the discovery spanning tree: every non-start cell with the
	// direction from its parent, in discovery order.
	Tree []Step `json:"tree,omitempty"`

	Stats Stats `json:"stats"`

	// Maze holds the text drawing that was solved, when there was one.
	Maze string `json:"maze,omitempty"`

	// Sealed carries the encrypted solution when a store seals it at rest.
	// Only ID, Strategy, Status, Stats and the timestamps stay readable.
	Sealed []byte `json:"sealed,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Found reports whether the goal was reached.
func (s *Solution) Found() bool {
	return s.Status == StatusFound
}

// Err returns ErrNoSolution when the frontier was exhausted, nil otherwise.
func (s *Solution) Err() error {
	if s.Status == StatusExhausted {
		return ErrNoSolution
	}
	return nil
}

// Directions returns the moves that lead from the start to the goal.
func (s *Solution) Directions() []Direction {
	dirs := make([]Direction, len(s.Path))
	for i, step := range s.Path {
		dirs[i] = step.Direction
	}
	return dirs
}

// Duration returns the wall-clock time spent solving.
func (s *Solution) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Clone returns a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}
	out := *s
	out.Path = append([]Step(nil), s.Path...)
	out.Visits = append([]CellID(nil), s.Visits...)
	out.Tree = append([]Step(nil), s.Tree...)
	out.Sealed = append([]byte(nil), s.Sealed...)
	return &out
}
