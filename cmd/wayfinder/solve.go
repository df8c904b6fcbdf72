package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/wayfinder/internal/cli"
)

var solveCmd = &cobra.Command{
	Use:   "solve [maze-file]",
	Short: "Solve a text maze",
	Long: `Explores a text maze from its S mark until the F mark is found.
The maze is read from the given file, or from stdin when no file (or "-") is given.
Walls are '+'; every other character is open floor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		opts := cli.SolveOptions{
			In:       cmd.InOrStdin(),
			Strategy: strategy,
			Format:   format,
			Color:    !noColor && term.IsTerminal(int(os.Stdout.Fd())),
		}
		if len(args) > 0 {
			opts.Path = args[0]
		}

		sol, err := cli.Solve(cmd.Context(), app, opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return sol.Err()
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringP("strategy", "s", "", "Exploration order: bfs (shortest path) or dfs")
	solveCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json, mermaid or report")
	solveCmd.Flags().Bool("no-color", false, "Disable colored output")
}
