package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/domain"
)

func TestMarkdown(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sol := &domain.Solution{
		ID:       "abc",
		Strategy: domain.BreadthFirst,
		Status:   domain.StatusFound,
		Goal:     domain.CellID{X: 2},
		Path: []domain.Step{
			{Cell: domain.CellID{X: 1}, Direction: domain.East},
			{Cell: domain.CellID{X: 2}, Direction: domain.East},
		},
		Stats:      domain.Stats{Peeks: 7, Moves: 1, Discovered: 3, Visited: 2},
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Millisecond),
	}

	md := tui.Markdown(sol, "S.F\n")
	assert.Contains(t, md, "# Solution `abc`")
	assert.Contains(t, md, "| Status | **found** |")
	assert.Contains(t, md, "| Path length | 2 |")
	assert.Contains(t, md, "| Duration | 3ms |")
	assert.Contains(t, md, "east → east")
	assert.Contains(t, md, "```\nS.F\n```")

	sol.Status = domain.StatusExhausted
	md = tui.Markdown(sol, "")
	assert.Contains(t, md, "cannot be reached")
	assert.NotContains(t, md, "Path length")
	assert.NotContains(t, md, "## Maze")
}

func TestReport(t *testing.T) {
	out, err := tui.Report(&domain.Solution{ID: "xyz", Status: domain.StatusExhausted}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "xyz")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Greater(t, buf.Len(), 100)
}
