package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("init markdown renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// Markdown summarizes a solution as a markdown document. drawing, when not
// empty, is embedded as a code block.
func Markdown(sol *domain.Solution, drawing string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Solution `%s`\n\n", sol.ID)

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Status | **%s** |\n", sol.Status)
	fmt.Fprintf(&b, "| Strategy | %s |\n", sol.Strategy)
	if sol.Found() {
		fmt.Fprintf(&b, "| Goal | %s |\n", sol.Goal)
		fmt.Fprintf(&b, "| Path length | %d |\n", len(sol.Path))
	}
	fmt.Fprintf(&b, "| Cells discovered | %d |\n", sol.Stats.Discovered)
	fmt.Fprintf(&b, "| Cells visited | %d |\n", sol.Stats.Visited)
	fmt.Fprintf(&b, "| Peeks | %d |\n", sol.Stats.Peeks)
	fmt.Fprintf(&b, "| Moves | %d |\n", sol.Stats.Moves)
	if !sol.StartedAt.IsZero() {
		fmt.Fprintf(&b, "| Duration | %s |\n", sol.Duration())
	}

	if sol.Found() {
		b.WriteString("\n## Directions\n\n")
		arrows := make([]string, 0, len(sol.Path))
		for _, d := range sol.Directions() {
			arrows = append(arrows, d.String())
		}
		if len(arrows) == 0 {
			b.WriteString("_Already at the goal._\n")
		} else {
			fmt.Fprintf(&b, "%s\n", strings.Join(arrows, " → "))
		}
	} else {
		b.WriteString("\n> The goal cannot be reached from the start.\n")
	}

	if drawing != "" {
		fmt.Fprintf(&b, "\n## Maze\n\n```\n%s```\n", drawing)
	}
	return b.String()
}

// Report renders the markdown summary of a solution for the terminal.
func Report(sol *domain.Solution, drawing string) (string, error) {
	return NewRenderer()(Markdown(sol, drawing))
}
