// Package agent provides the Handle the solver drives: a sensing capability and a
// movement capability composed into one object that records what it was asked to do.
package agent

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Handle composes a Sensor and a Mover. It is the only object the solver uses to
// touch the environment. A Handle belongs to one solve at a time.
type Handle struct {
	sensor ports.Sensor
	mover  ports.Mover

	peeks  int
	failed int
	trace  []domain.Direction
}

var _ ports.Agent = (*Handle)(nil)

// New composes separate capabilities into a Handle.
func New(sensor ports.Sensor, mover ports.Mover) *Handle {
	return &Handle{sensor: sensor, mover: mover}
}

// For wraps an environment that provides both capabilities.
// If env is already a Handle it is returned as is.
func For(env ports.Agent) *Handle {
	if h, ok := env.(*Handle); ok {
		return h
	}
	return New(env, env)
}

// Peek senses one neighbor.
func (h *Handle) Peek(direction domain.Direction) domain.Outcome {
	h.peeks++
	return h.sensor.Peek(direction)
}

// AttemptMove asks the environment to step. Successful moves are appended to the trace.
func (h *Handle) AttemptMove(direction domain.Direction) error {
	if !direction.Valid() {
		h.failed++
		return fmt.Errorf("attempt move %s: %w", direction, domain.ErrBlocked)
	}
	if err := h.mover.AttemptMove(direction); err != nil {
		h.failed++
		return err
	}
	h.trace = append(h.trace, direction)
	return nil
}

// Peeks returns the number of sensing calls issued so far.
func (h *Handle) Peeks() int { return h.peeks }

// Moves returns the number of successful moves.
func (h *Handle) Moves() int { return len(h.trace) }

// FailedMoves returns the number of rejected moves.
func (h *Handle) FailedMoves() int { return h.failed }

// Trace returns a copy of the successful moves, in order.
func (h *Handle) Trace() []domain.Direction {
	return append([]domain.Direction(nil), h.trace...)
}
