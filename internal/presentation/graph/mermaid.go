package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Overlay selects which parts of the tree to highlight.
type Overlay struct {
	Path    bool // cells on the solution path
	Visited bool // cells the agent stood on
}

// GenerateMermaid produces a Mermaid flowchart of the discovery spanning tree of
// a solution. Cells are nodes, tree edges are labeled with the direction taken
// from the parent. Shapes:
//   - Start: ((Circle))
//   - Goal: {{Hexagon}}
//   - Default: [Rectangle]
func GenerateMermaid(sol *domain.Solution, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	writeNode(&sb, domain.Origin, sol)
	for _, step := range sol.Tree {
		writeNode(&sb, step.Cell, sol)
	}
	for _, step := range sol.Tree {
		parent := step.Cell.Step(step.Direction.Reverse())
		fmt.Fprintf(&sb, "    %s -- \"%c\" --> %s\n", nodeID(parent), step.Direction.Arrow(), nodeID(step.Cell))
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Black text keeps contrast on light fills whatever the theme.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef path fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	if overlay.Visited {
		for _, c := range sol.Visits {
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(c))
		}
	}
	if overlay.Path && sol.Found() {
		fmt.Fprintf(&sb, "    class %s path;\n", nodeID(domain.Origin))
		for _, step := range sol.Path {
			fmt.Fprintf(&sb, "    class %s path;\n", nodeID(step.Cell))
		}
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, c domain.CellID, sol *domain.Solution) {
	opener, closer := "[", "]"
	switch {
	case c == domain.Origin:
		opener, closer = "((", "))"
	case sol.Found() && c == sol.Goal:
		opener, closer = "{{", "}}"
	}
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", nodeID(c), opener, c, closer)
}

// nodeID turns a cell into a Mermaid-safe identifier: (3,-1) becomes c3_m1.
func nodeID(c domain.CellID) string {
	return "c" + coord(c.X) + "_" + coord(c.Y)
}

func coord(v int) string {
	if v < 0 {
		return fmt.Sprintf("m%d", -v)
	}
	return fmt.Sprintf("%d", v)
}
