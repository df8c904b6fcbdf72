package domain

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions is the fixed enumeration order used whenever all four neighbors
// are scanned. Traversal order, and therefore every solution, depends on it.
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

// Reverse returns the opposite direction (North<->South, East<->West).
func (d Direction) Reverse() Direction {
	return (d + 2) % 4
}

// Offset returns the coordinate delta of a single step in this direction.
// X grows towards East and Y grows towards South.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Turn returns the cardinal direction reached by applying a relative turn to d.
func (d Direction) Turn(r Relative) Direction {
	return (d + Direction(r)) % 4
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Arrow returns a one-rune glyph for the direction, used by renderers.
func (d Direction) Arrow() rune {
	switch d {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	default:
		return '<'
	}
}

// MarshalText encodes the direction as its lower-case name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts names and single-letter abbreviations, case-insensitive.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses "north", "N", "East", ... into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Relative is a turn expressed relative to a heading.
type Relative uint8

const (
	Forward Relative = iota
	Right
	Backward
	Left
)

func (r Relative) String() string {
	switch r {
	case Forward:
		return "forward"
	case Right:
		return "right"
	case Backward:
		return "backward"
	case Left:
		return "left"
	}
	return fmt.Sprintf("relative(%d)", uint8(r))
}

// Reverse returns the opposite turn (Forward<->Backward, Right<->Left).
func (r Relative) Reverse() Relative {
	return (r + 2) % 4
}
