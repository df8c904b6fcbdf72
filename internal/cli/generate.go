package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/wayfinder/pkg/adapters/gridmaze"
)

// GenerateOptions configures a random maze.
type GenerateOptions struct {
	Width, Height int
	Seed          int64 // zero picks a time based seed
	Extra         int   // walls knocked down after carving, creating loops
}

// Generate writes a random maze in the text format understood by solve.
func Generate(opts GenerateOptions, w io.Writer) error {
	gridOpts := []gridmaze.Option{gridmaze.WithExtraPassages(opts.Extra)}
	if opts.Seed != 0 {
		gridOpts = append(gridOpts, gridmaze.WithSeed(opts.Seed))
	}
	maze, err := gridmaze.New(opts.Width, opts.Height, gridOpts...)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	_, err = io.WriteString(w, maze.Text())
	return err
}
