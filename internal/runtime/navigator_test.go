package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/adapters/gridmaze"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_ReachesEveryDiscoveredCell(t *testing.T) {
	maze, err := gridmaze.New(8, 8, gridmaze.WithSeed(21), gridmaze.WithExtraPassages(6))
	require.NoError(t, err)

	run, err := runtime.NewSolver().Solve(context.Background(), maze)
	require.NoError(t, err)

	nav := run.Navigator
	cells := run.Graph.Cells()
	// Hop across the tree in an order that mixes branches.
	for i := range cells {
		target := cells[(i*7)%len(cells)]
		require.NoError(t, nav.MoveTo(target), "to %s", target)
		assert.Equal(t, target, nav.Position())
		assert.Equal(t, target, maze.Position())
	}
}

func TestNavigator_ClimbsToCommonAncestor(t *testing.T) {
	// Two branches hang off (1,0); moving between their tips must not pass the start.
	maze := textmaze.MustParse("S  \n+ +\n+  \n+++\n")
	var moves []domain.MoveEvent
	hooks := domain.LifecycleHooks{
		OnMove: func(_ context.Context, e *domain.MoveEvent) { moves = append(moves, *e) },
	}
	run, err := runtime.NewSolver(runtime.WithLifecycleHooks(hooks)).Solve(context.Background(), maze)
	require.NoError(t, err)
	require.Equal(t, domain.StatusExhausted, run.Status)

	nav := run.Navigator
	require.NoError(t, nav.MoveTo(domain.CellID{X: 2}))
	moves = nil
	require.NoError(t, nav.MoveTo(domain.CellID{X: 2, Y: 2}))

	var path []domain.CellID
	for _, m := range moves {
		path = append(path, m.To)
		assert.NotEqual(t, domain.Origin, m.To)
	}
	assert.Equal(t, []domain.CellID{{X: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}}, path)
	assert.True(t, moves[0].Backtrack)
	assert.False(t, moves[1].Backtrack)
}

func TestNavigator_Failures(t *testing.T) {
	maze := textmaze.MustParse("S F")
	graph := runtime.NewGraph()
	parents := runtime.NewParentMap(domain.Origin)
	nav := runtime.NewNavigator(maze, graph, parents, logging.NewNop(), nil)
	east := domain.CellID{X: 1}

	require.NoError(t, nav.MoveTo(domain.Origin), "moving in place is a no-op")

	err := nav.MoveTo(east)
	assert.ErrorIs(t, err, domain.ErrGraphCorrupted, "undiscovered target")

	// Known cell with a parent edge but no open slot leading to it.
	graph.Discover(domain.Origin)
	graph.Discover(east)
	parents.Record(east, domain.Origin, domain.East)
	err = nav.MoveTo(east)
	assert.ErrorIs(t, err, domain.ErrGraphCorrupted)

	var solveErr *domain.SolveError
	require.ErrorAs(t, err, &solveErr)
	assert.Equal(t, "navigate", solveErr.Op)
	assert.Equal(t, domain.East, solveErr.Direction)
	assert.Equal(t, domain.Origin, maze.Position(), "no move was attempted")
	assert.Equal(t, 0, nav.Moves())
}
