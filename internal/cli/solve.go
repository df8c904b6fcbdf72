package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/internal/presentation/render"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Output formats accepted by solve and solutions show.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMermaid = "mermaid"
	FormatReport  = "report"
)

// SolveOptions configures one solve from the command line.
type SolveOptions struct {
	// Path is the maze file; empty or "-" reads In.
	Path     string
	In       io.Reader
	Strategy string // empty keeps the configured strategy
	Format   string
	// Color enables ANSI highlighting of the text format.
	Color bool
}

// Solve reads a text maze, solves it and writes the result in the chosen
// format. An exhausted search is reported, not returned as an error.
func Solve(ctx context.Context, app *App, opts SolveOptions, w io.Writer) (*domain.Solution, error) {
	text, err := readMaze(opts)
	if err != nil {
		return nil, err
	}

	var solveOpts []wayfinder.Option
	if opts.Strategy != "" {
		strategy, err := domain.ParseStrategy(opts.Strategy)
		if err != nil {
			return nil, err
		}
		solveOpts = append(solveOpts, wayfinder.WithStrategy(strategy))
	}

	sol, err := app.Explorer.SolveText(ctx, text, solveOpts...)
	if err != nil && sol == nil {
		return nil, err
	}
	if err != nil {
		app.Logger.Warn("Solution not stored", "err", err, "solution", sol.ID)
	}
	return sol, Write(w, sol, opts.Format, opts.Color)
}

// Write renders a solution. The text and report formats need the maze
// drawing stored on the solution.
func Write(w io.Writer, sol *domain.Solution, format string, color bool) error {
	switch format {
	case "", FormatText:
		if sol.Maze == "" {
			return fmt.Errorf("solution %s has no maze drawing", sol.ID)
		}
		profile := termenv.Ascii
		if color {
			profile = termenv.EnvColorProfile()
		}
		out, err := render.Highlight(sol.Maze, sol, profile)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, summary(sol))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sol)
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(sol, &graph.Overlay{Path: true, Visited: true}))
		return err
	case FormatReport:
		out, err := tui.Report(sol, sol.Maze)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown format %q (expected text, json, mermaid or report)", format)
}

func summary(sol *domain.Solution) string {
	if !sol.Found() {
		return fmt.Sprintf("%s: no path (%d cells visited, %d moves)", sol.Status, sol.Stats.Visited, sol.Stats.Moves)
	}
	return fmt.Sprintf("%s: %d steps (%d cells visited, %d moves, %d peeks)",
		sol.Status, len(sol.Path), sol.Stats.Visited, sol.Stats.Moves, sol.Stats.Peeks)
}

func readMaze(opts SolveOptions) (string, error) {
	if opts.Path == "" || opts.Path == "-" {
		if opts.In == nil {
			return "", fmt.Errorf("no maze given")
		}
		data, err := io.ReadAll(opts.In)
		if err != nil {
			return "", fmt.Errorf("read maze: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return "", fmt.Errorf("read maze: %w", err)
	}
	return string(data), nil
}
