package gridmaze_test

import (
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/gridmaze"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passages counts the open interior walls, each one once.
func passages(m *gridmaze.Maze) int {
	n := 0
	for _, row := range m.Grid {
		for _, cell := range row {
			if cell.Open(domain.East) {
				n++
			}
			if cell.Open(domain.South) {
				n++
			}
		}
	}
	return n
}

// reachable flood-fills from the top-left cell through open walls.
func reachable(m *gridmaze.Maze) int {
	seen := map[gridmaze.Position]bool{{}: true}
	queue := []gridmaze.Position{{}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range domain.Directions {
			if !m.Grid[p.Row][p.Col].Open(d) {
				continue
			}
			dx, dy := d.Offset()
			q := gridmaze.Position{Row: p.Row + dy, Col: p.Col + dx}
			if !seen[q] {
				seen[q] = true
				queue = append(queue, q)
			}
		}
	}
	return len(seen)
}

func TestNew_InvalidArguments(t *testing.T) {
	_, err := gridmaze.New(0, 5)
	assert.ErrorIs(t, err, gridmaze.ErrInvalidDimensions)

	_, err = gridmaze.New(gridmaze.MaxDimension+1, 5)
	assert.ErrorIs(t, err, gridmaze.ErrInvalidDimensions)

	_, err = gridmaze.New(3, 3, gridmaze.WithGoal(3, 0))
	assert.ErrorIs(t, err, gridmaze.ErrInvalidPlacement)

	_, err = gridmaze.New(1, 1)
	assert.ErrorIs(t, err, gridmaze.ErrInvalidPlacement, "start and goal coincide")
}

func TestNew_IsSpanningTree(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m, err := gridmaze.New(9, 6, gridmaze.WithSeed(seed))
		require.NoError(t, err)

		assert.Equal(t, 9*6-1, passages(m), "seed %d", seed)
		assert.Equal(t, 9*6, reachable(m), "seed %d", seed)
	}
}

func TestNew_Deterministic(t *testing.T) {
	a, err := gridmaze.New(12, 8, gridmaze.WithSeed(42))
	require.NoError(t, err)
	b, err := gridmaze.New(12, 8, gridmaze.WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, a.Text(), b.Text())
	assert.Equal(t, a.String(), b.String())
}

func TestWithExtraPassages(t *testing.T) {
	m, err := gridmaze.New(8, 8, gridmaze.WithSeed(7), gridmaze.WithExtraPassages(5))
	require.NoError(t, err)
	assert.Equal(t, 8*8-1+5, passages(m))
}

func TestMaze_MovesRespectWalls(t *testing.T) {
	m, err := gridmaze.New(4, 4, gridmaze.WithSeed(3), gridmaze.WithStart(1, 1), gridmaze.WithGoal(0, 0))
	require.NoError(t, err)
	assert.Equal(t, gridmaze.Position{Row: 1, Col: 1}, m.Start())
	assert.Equal(t, gridmaze.Position{}, m.Goal())

	for _, d := range domain.Directions {
		open := m.Grid[1][1].Open(d)
		if open {
			assert.NotEqual(t, domain.Wall, m.Peek(d))
			continue
		}
		assert.Equal(t, domain.Wall, m.Peek(d))
		assert.ErrorIs(t, m.AttemptMove(d), domain.ErrBlocked)
		assert.Equal(t, domain.Origin, m.Position())
	}

	for _, d := range domain.Directions {
		if m.Grid[1][1].Open(d) {
			require.NoError(t, m.AttemptMove(d))
			dx, dy := d.Offset()
			assert.Equal(t, domain.CellID{X: dx, Y: dy}, m.Position())
			break
		}
	}
	m.Reset()
	assert.Equal(t, domain.Origin, m.Position())
}

func TestMaze_Text(t *testing.T) {
	m, err := gridmaze.New(5, 3, gridmaze.WithSeed(11))
	require.NoError(t, err)

	tm, err := textmaze.Parse(m.Text())
	require.NoError(t, err)
	assert.Equal(t, 11, tm.Width())
	assert.Equal(t, 7, tm.Height())

	row, col := tm.Start()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
	assert.Equal(t, byte('F'), tm.Rows()[5][9])

	// Every grid wall maps to a text wall between the two cell centers.
	for r, cells := range m.Grid {
		for c, cell := range cells {
			if c+1 < m.Width {
				assert.Equal(t, cell.Open(domain.East), tm.Rows()[2*r+1][2*c+2] == ' ')
			}
		}
	}
}
