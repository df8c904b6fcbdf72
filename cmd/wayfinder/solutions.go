package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/wayfinder/internal/cli"
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "Manage stored solutions",
	Long:  `Lists, shows and deletes solutions kept by the file or redis store.`,
}

var solutionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored solution ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := app.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var solutionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored solution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		sol, err := app.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.Write(cmd.OutOrStdout(), sol, format, false)
	},
}

var solutionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored solution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(solutionsCmd)
	solutionsCmd.AddCommand(solutionsListCmd, solutionsShowCmd, solutionsDeleteCmd)

	solutionsShowCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: text, json, mermaid or report")
}
