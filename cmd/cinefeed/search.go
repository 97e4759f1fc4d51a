package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search for movies by title",
	Long: `Search for movies by title.

Examples:
  cinefeed search "The Matrix"
  cinefeed search inception --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("page", 1, "Result page")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	page, _ := cmd.Flags().GetInt("page")

	client := NewClient(serverURL)
	result, err := client.Search(query, page)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	if len(result.Results) == 0 {
		fmt.Printf("No movies found for %q\n", query)
		return nil
	}

	fmt.Printf("Results for %q:\n\n", query)
	printMoviePage(result)
	return nil
}
