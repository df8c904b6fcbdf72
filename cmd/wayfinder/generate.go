package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/wayfinder/internal/cli"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a random text maze",
	Long:  `Carves a perfect maze with Wilson's algorithm and prints it in the format solve reads.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts cli.GenerateOptions
		opts.Width, _ = cmd.Flags().GetInt("width")
		opts.Height, _ = cmd.Flags().GetInt("height")
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
		opts.Extra, _ = cmd.Flags().GetInt("loops")
		return cli.Generate(opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("width", 10, "Width in cells")
	generateCmd.Flags().Int("height", 10, "Height in cells")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
	generateCmd.Flags().Int("loops", 0, "Extra walls to knock down, creating cycles")
}
