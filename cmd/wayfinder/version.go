package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/wayfinder"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wayfinder",
	// Skips the store connection made by the root pre-run.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wayfinder version %s\n", strings.TrimSpace(wayfinder.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
