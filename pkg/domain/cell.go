package domain

import "fmt"

// Outcome is the result of sensing one neighbor.
type Outcome uint8

const (
	Open Outcome = iota
	Wall
	Goal
)

func (o Outcome) String() string {
	switch o {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Passable reports whether the agent can step into a neighbor with this outcome.
func (o Outcome) Passable() bool {
	return o == Open || o == Goal
}

// CellID identifies a discovered cell by its offset from the start.
type CellID struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Origin is the identifier of the start cell.
var Origin = CellID{}

// Step returns the identifier of the neighbor in direction d.
func (c CellID) Step(d Direction) CellID {
	dx, dy := d.Offset()
	return CellID{X: c.X + dx, Y: c.Y + dy}
}

func (c CellID) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// SlotKind describes what is known about one side of a cell.
type SlotKind uint8

const (
	// Unresolved means the side has not been sensed yet.
	Unresolved SlotKind = iota
	// Blocked means the side was sensed as a wall or the edge of the maze.
	Blocked
	// Linked means the side leads to a discovered cell.
	Linked
)

func (k SlotKind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case Blocked:
		return "blocked"
	case Linked:
		return "linked"
	}
	return fmt.Sprintf("slot(%d)", uint8(k))
}

// Slot is one entry of a NeighborSlots tuple. Cell is meaningful only when Kind is Linked.
type Slot struct {
	Kind SlotKind
	Cell CellID
}

// BlockedSlot returns a Blocked slot.
func BlockedSlot() Slot {
	return Slot{Kind: Blocked}
}

// LinkedSlot returns a slot leading to cell.
func LinkedSlot(cell CellID) Slot {
	return Slot{Kind: Linked, Cell: cell}
}

// Resolved reports whether the slot has been sensed.
func (s Slot) Resolved() bool {
	return s.Kind != Unresolved
}

func (s Slot) String() string {
	if s.Kind == Linked {
		return "linked" + s.Cell.String()
	}
	return s.Kind.String()
}

// NeighborSlots holds one slot per direction, indexed in Directions order.
type NeighborSlots [4]Slot

// Get returns the slot for direction d.
func (n NeighborSlots) Get(d Direction) Slot {
	return n[d]
}

// Unresolved returns the directions that have not been sensed yet, in Directions order.
func (n NeighborSlots) Unresolved() []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if !n[d].Resolved() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
