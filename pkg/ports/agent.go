package ports

import "github.com/aretw0/wayfinder/pkg/domain"

// Sensor is the read-only sensing capability of an environment.
type Sensor interface {
	// Peek reports what lies one step away in the given direction.
	// It must not change the environment and must answer consistently.
	Peek(direction domain.Direction) domain.Outcome
}

// Mover is the movement capability of an environment.
type Mover interface {
	// AttemptMove steps the agent in the given direction.
	// On failure the position is left unchanged and the error wraps domain.ErrBlocked.
	AttemptMove(direction domain.Direction) error
}

// Agent composes sensing and movement. Environments implement it.
type Agent interface {
	Sensor
	Mover
}
