/*
Package wayfinder solves mazes it cannot see.

An agent stands on a start cell of an unknown grid. It can only peek at the four
neighboring cells and try to step into one of them. Wayfinder builds a map
incrementally from those observations, walks the agent between discovered cells
over known passages (backtracking through a discovery spanning tree), and
returns a path from the start to the first goal it senses.

# Concept

The environment is anything that implements ports.Agent: Peek reports Open,
Wall or Goal for a direction, AttemptMove moves one step or fails with
domain.ErrBlocked. Text mazes (pkg/adapters/textmaze) and generated walled
grids (pkg/adapters/gridmaze) are provided.

Exploration is breadth-first by default, which yields a shortest path. Depth-first
order is available through WithStrategy. An unreachable goal is reported as
domain.StatusExhausted rather than an error; errors are reserved for
environments that contradict themselves and for corrupted internal state.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/wayfinder"
	)

	func main() {
		explorer := wayfinder.New()

		sol, err := explorer.SolveText(context.Background(), "S  +\n++ F\n")
		if err != nil {
			log.Fatal(err)
		}
		if err := sol.Err(); err != nil {
			log.Fatal(err)
		}
		fmt.Println(sol.Directions()) // [east east south east]
	}
*/
package wayfinder
