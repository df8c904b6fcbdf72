package render_test

import (
	"context"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/presentation/render"
)

const maze = "+++++\n+S  +\n+++ +\n+F  +\n+++++\n"

func TestOverlay(t *testing.T) {
	sol, err := wayfinder.New().SolveText(context.Background(), maze)
	require.NoError(t, err)

	got, err := render.Overlay(maze, sol)
	require.NoError(t, err)
	assert.Equal(t, "+++++\n+S..+\n+++.+\n+F..+\n+++++\n", got)
}

func TestOverlay_Exhausted(t *testing.T) {
	text := "S+F\n"
	sol, err := wayfinder.New().SolveText(context.Background(), text)
	require.NoError(t, err)

	got, err := render.Overlay(text, sol)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestHighlight_AsciiMatchesOverlay(t *testing.T) {
	sol, err := wayfinder.New().SolveText(context.Background(), maze)
	require.NoError(t, err)

	plain, err := render.Overlay(maze, sol)
	require.NoError(t, err)
	colored, err := render.Highlight(maze, sol, termenv.Ascii)
	require.NoError(t, err)
	assert.Equal(t, plain, colored)

	colored, err = render.Highlight(maze, sol, termenv.TrueColor)
	require.NoError(t, err)
	assert.Contains(t, colored, "\x1b[")
}

func TestOverlay_InvalidMaze(t *testing.T) {
	_, err := render.Overlay("", nil)
	assert.Error(t, err)
}
