package runtime

import (
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Graph is the discovered-maze model: every cell observed so far and what is
// known about each of its four sides. Slots only ever go from Unresolved to a
// resolved value. Not safe for concurrent use.
type Graph struct {
	slots map[domain.CellID]*domain.NeighborSlots
	order []domain.CellID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{slots: make(map[domain.CellID]*domain.NeighborSlots)}
}

// Discover adds a cell with all sides unresolved.
// It returns false if the cell was already known.
func (g *Graph) Discover(cell domain.CellID) bool {
	if _, ok := g.slots[cell]; ok {
		return false
	}
	g.slots[cell] = &domain.NeighborSlots{}
	g.order = append(g.order, cell)
	return true
}

// Has reports whether the cell has been discovered.
func (g *Graph) Has(cell domain.CellID) bool {
	_, ok := g.slots[cell]
	return ok
}

// Register records what lies on one side of a discovered cell.
// Registering the same value twice is a no-op; a different value is a conflict.
func (g *Graph) Register(cell domain.CellID, direction domain.Direction, slot domain.Slot) error {
	slots, ok := g.slots[cell]
	if !ok {
		return fmt.Errorf("register %s side of undiscovered cell %s: %w", direction, cell, domain.ErrGraphCorrupted)
	}
	if !slot.Resolved() {
		return fmt.Errorf("register %s side of %s as unresolved: %w", direction, cell, domain.ErrGraphCorrupted)
	}

	current := slots[direction]
	if !current.Resolved() {
		slots[direction] = slot
		return nil
	}
	if current != slot {
		return fmt.Errorf("%s side of %s is %s, now %s: %w", direction, cell, current, slot, domain.ErrSlotConflict)
	}
	return nil
}

// Neighbors returns a copy of the slot tuple of a cell.
func (g *Graph) Neighbors(cell domain.CellID) (domain.NeighborSlots, bool) {
	slots, ok := g.slots[cell]
	if !ok {
		return domain.NeighborSlots{}, false
	}
	return *slots, true
}

// DirectionTo returns the direction of a known-open edge from one cell to another.
func (g *Graph) DirectionTo(from, to domain.CellID) (domain.Direction, bool) {
	slots, ok := g.slots[from]
	if !ok {
		return 0, false
	}
	for _, d := range domain.Directions {
		if s := slots[d]; s.Kind == domain.Linked && s.Cell == to {
			return d, true
		}
	}
	return 0, false
}

// Cells returns the discovered cells in discovery order.
func (g *Graph) Cells() []domain.CellID {
	return append([]domain.CellID(nil), g.order...)
}

// Len returns the number of discovered cells.
func (g *Graph) Len() int {
	return len(g.order)
}
