package runtime

import "github.com/aretw0/wayfinder/pkg/domain"

// Frontier is the worklist of discovered but unvisited cells.
// Breadth-first pops the oldest entry, depth-first the newest.
type Frontier struct {
	strategy domain.Strategy
	items    []domain.CellID
}

// NewFrontier creates an empty frontier for the given strategy.
func NewFrontier(strategy domain.Strategy) *Frontier {
	return &Frontier{strategy: strategy}
}

// Push appends a cell.
func (f *Frontier) Push(cell domain.CellID) {
	f.items = append(f.items, cell)
}

// Pop removes and returns the next cell to visit.
func (f *Frontier) Pop() (domain.CellID, bool) {
	if len(f.items) == 0 {
		return domain.CellID{}, false
	}

	var next domain.CellID
	if f.strategy == domain.DepthFirst {
		last := len(f.items) - 1
		next = f.items[last]
		f.items = f.items[:last]
	} else {
		next = f.items[0]
		f.items = f.items[1:]
	}
	return next, true
}

// Len returns the number of pending cells.
func (f *Frontier) Len() int {
	return len(f.items)
}
