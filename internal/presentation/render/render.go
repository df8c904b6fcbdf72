// Package render draws solutions on top of the text maze they were found in.
package render

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// PathMark replaces open floor on the solution path.
const PathMark = '.'

// Overlay returns the drawing with every path cell marked. Start and goal marks
// are kept.
func Overlay(text string, sol *domain.Solution) (string, error) {
	rows, onPath, err := layout(text, sol)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for r, row := range rows {
		for c, ch := range row {
			if onPath[[2]int{r, c}] && ch != textmaze.StartMark && ch != textmaze.GoalMark {
				ch = PathMark
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Highlight is Overlay with terminal colors: walls dimmed, the path, start and
// goal colored for the given profile. termenv.Ascii yields plain Overlay output.
func Highlight(text string, sol *domain.Solution, profile termenv.Profile) (string, error) {
	rows, onPath, err := layout(text, sol)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for r, row := range rows {
		for c, ch := range row {
			cell := profile.String(string(ch))
			switch {
			case ch == textmaze.StartMark:
				cell = cell.Foreground(profile.Color("#22c55e")).Bold()
			case ch == textmaze.GoalMark:
				cell = cell.Foreground(profile.Color("#f43f5e")).Bold()
			case onPath[[2]int{r, c}]:
				cell = profile.String(string(PathMark)).Foreground(profile.Color("#facc15")).Bold()
			case ch == textmaze.WallMark:
				cell = cell.Foreground(profile.Color("#64748b"))
			}
			b.WriteString(cell.String())
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func layout(text string, sol *domain.Solution) ([][]rune, map[[2]int]bool, error) {
	maze, err := textmaze.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	onPath := make(map[[2]int]bool, len(sol.Path))
	for _, step := range sol.Path {
		r, c := maze.Locate(step.Cell)
		onPath[[2]int{r, c}] = true
	}
	rows := make([][]rune, 0, maze.Height())
	for _, row := range maze.Rows() {
		rows = append(rows, []rune(row))
	}
	return rows, onPath, nil
}
