package textmaze_test

import (
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"only newline": "\n",
		"no start":     "+++\n+ +\n",
		"two starts":   "SS\n",
		"ragged rows":  "S  \n+\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := textmaze.Parse(text)
			assert.ErrorIs(t, err, textmaze.ErrInvalidMaze)
		})
	}
}

func TestParse_ToleratesLineEndings(t *testing.T) {
	m, err := textmaze.Parse("+++\r\n+SF\r\n+++\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"+++", "+SF", "+++"}, m.Rows())
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, 3, m.Height())

	row, col := m.Start()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestMaze_Peek(t *testing.T) {
	m := textmaze.MustParse("+F+\n S+\n")

	assert.Equal(t, domain.Goal, m.Peek(domain.North))
	assert.Equal(t, domain.Wall, m.Peek(domain.East))
	assert.Equal(t, domain.Wall, m.Peek(domain.South), "out of bounds is a wall")
	assert.Equal(t, domain.Open, m.Peek(domain.West))
	assert.Equal(t, domain.Wall, m.Peek(domain.Direction(9)))
}

func TestMaze_AttemptMove(t *testing.T) {
	m := textmaze.MustParse("+F+\n S+\n")

	err := m.AttemptMove(domain.East)
	assert.ErrorIs(t, err, domain.ErrBlocked)
	assert.Equal(t, domain.Origin, m.Position())

	require.NoError(t, m.AttemptMove(domain.West))
	assert.Equal(t, domain.CellID{X: -1, Y: 0}, m.Position())
	assert.False(t, m.AtGoal())

	require.NoError(t, m.AttemptMove(domain.East))
	require.NoError(t, m.AttemptMove(domain.North))
	assert.Equal(t, domain.CellID{X: 0, Y: -1}, m.Position())
	assert.True(t, m.AtGoal())
	assert.Equal(t, "+X+\n S+\n", m.String())

	row, col := m.Locate(m.Position())
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, col)

	m.Reset()
	assert.Equal(t, domain.Origin, m.Position())
	assert.Equal(t, "+F+\n X+\n", m.String())
}
