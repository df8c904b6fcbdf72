package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/wayfinder/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [maze-file]",
	Short: "Export the discovery tree of a solve as a Mermaid diagram",
	Long:  `Solves the maze and outputs a Mermaid diagram (graph LR) of every cell discovered, with the path highlighted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		opts := cli.SolveOptions{
			In:       cmd.InOrStdin(),
			Strategy: strategy,
			Format:   cli.FormatMermaid,
		}
		if len(args) > 0 {
			opts.Path = args[0]
		}
		_, err := cli.Solve(cmd.Context(), app, opts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("strategy", "s", "", "Exploration order: bfs or dfs")
}
