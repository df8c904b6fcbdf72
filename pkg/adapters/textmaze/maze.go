// Package textmaze implements an agent over a maze drawn as text.
//
// The encoding uses one character per cell:
//
//	S  start (exactly one)
//	F  goal (zero or more)
//	+  wall
//
// Every other character is open floor. Cells outside the drawing are walls.
package textmaze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

const (
	StartMark    = 'S'
	GoalMark     = 'F'
	WallMark     = '+'
	PositionMark = 'X'
)

// ErrInvalidMaze is returned by Parse for malformed drawings.
var ErrInvalidMaze = errors.New("invalid text maze")

// Maze is a parsed text maze together with the position of an agent in it.
// It is not safe for concurrent use.
type Maze struct {
	grid  [][]rune
	start position
	pos   position
}

type position struct {
	row, col int
}

// Parse reads a text maze. Rows must all have the same width; a single
// trailing newline and carriage returns are tolerated.
func Parse(text string) (*Maze, error) {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidMaze)
	}

	lines := strings.Split(text, "\n")
	m := &Maze{grid: make([][]rune, len(lines))}
	width := -1
	starts := 0
	for r, line := range lines {
		row := []rune(line)
		if width == -1 {
			width = len(row)
		}
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidMaze, r, len(row), width)
		}
		for c, ch := range row {
			if ch == StartMark {
				starts++
				m.start = position{r, c}
			}
		}
		m.grid[r] = row
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidMaze)
	}
	if starts != 1 {
		return nil, fmt.Errorf("%w: expected exactly one %q, found %d", ErrInvalidMaze, StartMark, starts)
	}
	m.pos = m.start
	return m, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(text string) *Maze {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Maze) at(p position) rune {
	if p.row < 0 || p.row >= len(m.grid) || p.col < 0 || p.col >= len(m.grid[p.row]) {
		return WallMark
	}
	return m.grid[p.row][p.col]
}

func (m *Maze) next(d domain.Direction) position {
	dx, dy := d.Offset()
	return position{m.pos.row + dy, m.pos.col + dx}
}

func classify(ch rune) domain.Outcome {
	switch ch {
	case WallMark:
		return domain.Wall
	case GoalMark:
		return domain.Goal
	default:
		return domain.Open
	}
}

// Peek reports what lies one step away in direction d.
func (m *Maze) Peek(d domain.Direction) domain.Outcome {
	if !d.Valid() {
		return domain.Wall
	}
	return classify(m.at(m.next(d)))
}

// AttemptMove moves one step in direction d. Walls are refused with an error
// wrapping domain.ErrBlocked and the position is left unchanged.
func (m *Maze) AttemptMove(d domain.Direction) error {
	if !d.Valid() {
		return fmt.Errorf("invalid direction %s: %w", d, domain.ErrBlocked)
	}
	next := m.next(d)
	if classify(m.at(next)) == domain.Wall {
		return fmt.Errorf("wall %s of row %d col %d: %w", d, m.pos.row, m.pos.col, domain.ErrBlocked)
	}
	m.pos = next
	return nil
}

// Position returns the agent's cell relative to the start.
func (m *Maze) Position() domain.CellID {
	return domain.CellID{X: m.pos.col - m.start.col, Y: m.pos.row - m.start.row}
}

// Locate returns the row and column of a cell given relative to the start.
func (m *Maze) Locate(c domain.CellID) (row, col int) {
	return m.start.row + c.Y, m.start.col + c.X
}

// Start returns the row and column of the start mark.
func (m *Maze) Start() (row, col int) {
	return m.start.row, m.start.col
}

// AtGoal reports whether the agent stands on a goal cell.
func (m *Maze) AtGoal() bool {
	return m.at(m.pos) == GoalMark
}

// Reset puts the agent back on the start cell.
func (m *Maze) Reset() {
	m.pos = m.start
}

// Rows returns a copy of the drawing, one string per row.
func (m *Maze) Rows() []string {
	rows := make([]string, len(m.grid))
	for i, r := range m.grid {
		rows[i] = string(r)
	}
	return rows
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return len(m.grid[0])
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return len(m.grid)
}

// String draws the maze with the agent marked as X.
func (m *Maze) String() string {
	var b strings.Builder
	for r, row := range m.grid {
		for c, ch := range row {
			if r == m.pos.row && c == m.pos.col {
				ch = PositionMark
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
