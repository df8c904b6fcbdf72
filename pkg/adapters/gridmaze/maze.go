/*
Package gridmaze generates rectangular mazes whose cells are separated by walls.

Layouts are carved with Wilson's algorithm, which yields a uniform spanning
tree: every cell is reachable and, unless extra passages are knocked down,
there is exactly one route between any two cells. Generation is deterministic
for a given seed.

A Maze also acts as an agent: it keeps a position and answers Peek and
AttemptMove, so it can be explored directly or converted to the text encoding
with Text.
*/
package gridmaze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// MaxDimension bounds both the width and the height of a generated maze.
const MaxDimension = 200

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidPlacement  = errors.New("invalid start or goal placement")
)

// Cell holds the four walls of one grid cell, indexed by domain.Direction.
type Cell struct {
	Walls [4]bool
}

// Open reports whether the side d has no wall.
func (c Cell) Open(d domain.Direction) bool {
	return d.Valid() && !c.Walls[d]
}

// Position is a row and column in the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) step(d domain.Direction) Position {
	dx, dy := d.Offset()
	return Position{Row: p.Row + dy, Col: p.Col + dx}
}

// Maze is a generated grid maze with an agent position. It is not safe for
// concurrent use.
type Maze struct {
	Width  int
	Height int
	Grid   [][]Cell

	start Position
	goal  Position
	pos   Position
	rng   *rand.Rand
}

// Option configures generation.
type Option func(*config)

type config struct {
	seed     int64
	start    *Position
	goal     *Position
	passages int
}

// WithSeed fixes the random source so the same layout is produced every time.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithStart places the start cell. Defaults to the top-left corner.
func WithStart(row, col int) Option {
	return func(c *config) {
		c.start = &Position{Row: row, Col: col}
	}
}

// WithGoal places the goal cell. Defaults to the bottom-right corner.
func WithGoal(row, col int) Option {
	return func(c *config) {
		c.goal = &Position{Row: row, Col: col}
	}
}

// WithExtraPassages knocks down n additional interior walls after carving,
// introducing loops.
func WithExtraPassages(n int) Option {
	return func(c *config) {
		c.passages = n
	}
}

// New generates a width by height maze.
func New(width, height int, opts ...Option) (*Maze, error) {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidDimensions, width, height, MaxDimension)
	}

	cfg := &config{seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Maze{
		Width:  width,
		Height: height,
		Grid:   make([][]Cell, height),
		start:  Position{},
		goal:   Position{Row: height - 1, Col: width - 1},
		rng:    rand.New(rand.NewSource(cfg.seed)),
	}
	if cfg.start != nil {
		m.start = *cfg.start
	}
	if cfg.goal != nil {
		m.goal = *cfg.goal
	}
	if !m.inBounds(m.start) || !m.inBounds(m.goal) || m.start == m.goal {
		return nil, fmt.Errorf("%w: start %v, goal %v in %dx%d", ErrInvalidPlacement, m.start, m.goal, width, height)
	}

	for r := range m.Grid {
		m.Grid[r] = make([]Cell, width)
		for c := range m.Grid[r] {
			m.Grid[r][c] = Cell{Walls: [4]bool{true, true, true, true}}
		}
	}
	m.carve()
	m.knockDown(cfg.passages)
	m.pos = m.start
	return m, nil
}

func (m *Maze) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < m.Height && p.Col >= 0 && p.Col < m.Width
}

func (m *Maze) randomPosition() Position {
	return Position{Row: m.rng.Intn(m.Height), Col: m.rng.Intn(m.Width)}
}

func (m *Maze) neighbors(p Position) []domain.Direction {
	result := make([]domain.Direction, 0, 4)
	for _, d := range domain.Directions {
		if m.inBounds(p.step(d)) {
			result = append(result, d)
		}
	}
	return result
}

func (m *Maze) openWall(p Position, d domain.Direction) {
	q := p.step(d)
	m.Grid[p.Row][p.Col].Walls[d] = false
	m.Grid[q.Row][q.Col].Walls[d.Reverse()] = false
}

// carve runs Wilson's algorithm: loop-erased random walks from unvisited cells
// until they hit the tree, each walk then being added to the tree.
func (m *Maze) carve() {
	inTree := make([][]bool, m.Height)
	for r := range inTree {
		inTree[r] = make([]bool, m.Width)
	}
	root := m.randomPosition()
	inTree[root.Row][root.Col] = true
	remaining := m.Width*m.Height - 1

	// Cells are visited in a fixed scan so the layout depends only on the seed.
	for r := 0; r < m.Height && remaining > 0; r++ {
		for c := 0; c < m.Width && remaining > 0; c++ {
			if inTree[r][c] {
				continue
			}

			// Walking over a cell again overwrites its exit, which erases the loop.
			exits := make(map[Position]domain.Direction)
			cell := Position{Row: r, Col: c}
			for !inTree[cell.Row][cell.Col] {
				options := m.neighbors(cell)
				d := options[m.rng.Intn(len(options))]
				exits[cell] = d
				cell = cell.step(d)
			}

			for cell = (Position{Row: r, Col: c}); !inTree[cell.Row][cell.Col]; {
				d := exits[cell]
				m.openWall(cell, d)
				inTree[cell.Row][cell.Col] = true
				remaining--
				cell = cell.step(d)
			}
		}
	}
}

// knockDown removes up to n interior walls chosen at random.
func (m *Maze) knockDown(n int) {
	var closed []struct {
		p Position
		d domain.Direction
	}
	for r := range m.Grid {
		for c := range m.Grid[r] {
			p := Position{Row: r, Col: c}
			// East and South only, so each interior wall is listed once.
			for _, d := range []domain.Direction{domain.East, domain.South} {
				if m.Grid[r][c].Walls[d] && m.inBounds(p.step(d)) {
					closed = append(closed, struct {
						p Position
						d domain.Direction
					}{p, d})
				}
			}
		}
	}
	m.rng.Shuffle(len(closed), func(i, j int) { closed[i], closed[j] = closed[j], closed[i] })
	for i := 0; i < n && i < len(closed); i++ {
		m.openWall(closed[i].p, closed[i].d)
	}
}

// Start returns the start cell.
func (m *Maze) Start() Position {
	return m.start
}

// Goal returns the goal cell.
func (m *Maze) Goal() Position {
	return m.goal
}

// Peek reports what lies one step away in direction d.
func (m *Maze) Peek(d domain.Direction) domain.Outcome {
	if !m.Grid[m.pos.Row][m.pos.Col].Open(d) {
		return domain.Wall
	}
	next := m.pos.step(d)
	if !m.inBounds(next) {
		return domain.Wall
	}
	if next == m.goal {
		return domain.Goal
	}
	return domain.Open
}

// AttemptMove moves one cell in direction d unless a wall is in the way.
func (m *Maze) AttemptMove(d domain.Direction) error {
	if m.Peek(d) == domain.Wall {
		return fmt.Errorf("wall %s of %v: %w", d, m.pos, domain.ErrBlocked)
	}
	m.pos = m.pos.step(d)
	return nil
}

// Position returns the agent's cell relative to the start.
func (m *Maze) Position() domain.CellID {
	return domain.CellID{X: m.pos.Col - m.start.Col, Y: m.pos.Row - m.start.Row}
}

// AtGoal reports whether the agent stands on the goal.
func (m *Maze) AtGoal() bool {
	return m.pos == m.goal
}

// Reset puts the agent back on the start cell.
func (m *Maze) Reset() {
	m.pos = m.start
}

// Text converts the maze to the text encoding: cells and removed walls become
// floor, every remaining wall and corner becomes '+'. Grid cell (r, c) lands on
// text row 2r+1, column 2c+1.
func (m *Maze) Text() string {
	rows := make([][]byte, 2*m.Height+1)
	for i := range rows {
		rows[i] = []byte(strings.Repeat("+", 2*m.Width+1))
	}
	for r := range m.Grid {
		for c, cell := range m.Grid[r] {
			tr, tc := 2*r+1, 2*c+1
			rows[tr][tc] = ' '
			if !cell.Walls[domain.East] {
				rows[tr][tc+1] = ' '
			}
			if !cell.Walls[domain.South] {
				rows[tr+1][tc] = ' '
			}
		}
	}
	rows[2*m.start.Row+1][2*m.start.Col+1] = 'S'
	rows[2*m.goal.Row+1][2*m.goal.Col+1] = 'F'

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// String draws the maze with box corners; S, F and the agent (@) are marked.
func (m *Maze) String() string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")
	for r := range m.Grid {
		b.WriteString("|")
		for c, cell := range m.Grid[r] {
			p := Position{Row: r, Col: c}
			switch p {
			case m.pos:
				b.WriteString(" @ ")
			case m.start:
				b.WriteString(" S ")
			case m.goal:
				b.WriteString(" F ")
			default:
				b.WriteString("   ")
			}
			if cell.Walls[domain.East] {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for _, cell := range m.Grid[r] {
			if cell.Walls[domain.South] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
