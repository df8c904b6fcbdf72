package domain

import (
	"errors"
	"fmt"
)

// ErrNoSolution is reported when the frontier is exhausted without reaching the goal.
var ErrNoSolution = errors.New("no solution")

// ErrBlocked is returned by environments when a move runs into a wall.
var ErrBlocked = errors.New("move blocked")

// ErrEnvironmentInconsistent is returned when the environment contradicts what was
// already sensed (the maze changed, or a known-open edge refused a move).
var ErrEnvironmentInconsistent = errors.New("environment inconsistent with discovered maze")

// ErrGraphCorrupted is returned when an internal invariant of the discovered graph
// or the parent map is violated.
var ErrGraphCorrupted = errors.New("discovered graph corrupted")

// ErrSlotConflict is returned when a neighbor slot is registered twice with different values.
var ErrSlotConflict = errors.New("neighbor slot conflict")

// ErrSolutionNotFound is returned when a solution ID cannot be found in the store.
var ErrSolutionNotFound = errors.New("solution not found")

// SolveError carries the cell and direction a fatal solve failure happened at.
type SolveError struct {
	Op        string // "sense", "move", "navigate" or "path"
	Cell      CellID
	Direction Direction
	Err       error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s at %s heading %s: %v", e.Op, e.Cell, e.Direction, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}
