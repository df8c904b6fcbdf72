package runtime

import (
	"fmt"
	"slices"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Edge is the tree edge over which a cell was first discovered.
type Edge struct {
	Parent    domain.CellID
	Direction domain.Direction // from Parent to the child
}

// ParentMap is the discovery spanning tree. Each non-root cell gets exactly one
// edge, written the first time it is discovered.
type ParentMap struct {
	root  domain.CellID
	edges map[domain.CellID]Edge
	order []domain.CellID
}

// NewParentMap creates a tree rooted at root.
func NewParentMap(root domain.CellID) *ParentMap {
	return &ParentMap{root: root, edges: make(map[domain.CellID]Edge)}
}

// Root returns the root of the tree.
func (p *ParentMap) Root() domain.CellID {
	return p.root
}

// Record stores the edge for child unless one exists. The first writer wins.
func (p *ParentMap) Record(child, parent domain.CellID, direction domain.Direction) bool {
	if child == p.root {
		return false
	}
	if _, ok := p.edges[child]; ok {
		return false
	}
	p.edges[child] = Edge{Parent: parent, Direction: direction}
	p.order = append(p.order, child)
	return true
}

// Get returns the edge of child.
func (p *ParentMap) Get(child domain.CellID) (Edge, bool) {
	e, ok := p.edges[child]
	return e, ok
}

// Len returns the number of recorded edges.
func (p *ParentMap) Len() int {
	return len(p.edges)
}

// Lineage returns the cells from the root to cell, both included.
func (p *ParentMap) Lineage(cell domain.CellID) ([]domain.CellID, error) {
	lineage := []domain.CellID{cell}
	cur := cell
	// A well-formed tree never needs more hops than it has edges.
	for hops := 0; cur != p.root; hops++ {
		if hops > len(p.edges) {
			return nil, fmt.Errorf("parent chain of %s does not reach %s: %w", cell, p.root, domain.ErrGraphCorrupted)
		}
		e, ok := p.edges[cur]
		if !ok {
			return nil, fmt.Errorf("no parent recorded for %s: %w", cur, domain.ErrGraphCorrupted)
		}
		cur = e.Parent
		lineage = append(lineage, cur)
	}
	slices.Reverse(lineage)
	return lineage, nil
}

// PathToRoot returns the steps from the root to cell. The root yields an empty path.
func (p *ParentMap) PathToRoot(cell domain.CellID) ([]domain.Step, error) {
	lineage, err := p.Lineage(cell)
	if err != nil {
		return nil, err
	}
	path := make([]domain.Step, 0, len(lineage)-1)
	for _, c := range lineage[1:] {
		path = append(path, domain.Step{Cell: c, Direction: p.edges[c].Direction})
	}
	return path, nil
}

// Depth returns the number of tree edges between the root and cell.
func (p *ParentMap) Depth(cell domain.CellID) (int, error) {
	lineage, err := p.Lineage(cell)
	if err != nil {
		return 0, err
	}
	return len(lineage) - 1, nil
}

// Tree returns every recorded edge as a step, in discovery order.
func (p *ParentMap) Tree() []domain.Step {
	tree := make([]domain.Step, 0, len(p.order))
	for _, c := range p.order {
		tree = append(tree, domain.Step{Cell: c, Direction: p.edges[c].Direction})
	}
	return tree
}
