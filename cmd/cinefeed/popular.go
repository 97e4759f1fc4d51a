package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular movies",
	Long: `List popular movies.

Examples:
  cinefeed popular
  cinefeed popular --page 2`,
	Args: cobra.NoArgs,
	RunE: runPopularCmd,
}

func init() {
	rootCmd.AddCommand(popularCmd)
	popularCmd.Flags().Int("page", 1, "Result page")
}

func runPopularCmd(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")

	client := NewClient(serverURL)
	result, err := client.PopularMovies(page)
	if err != nil {
		return fmt.Errorf("popular failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	printMoviePage(result)
	return nil
}

func printMoviePage(p *tmdb.MoviePage) {
	if len(p.Results) == 0 {
		fmt.Println("No movies found")
		return
	}

	fmt.Printf("Page %d of %d (%d movies total)\n\n", p.Page, p.TotalPages, p.TotalResults)
	fmt.Printf("  %8s │ %-42s │ %4s │ %4s\n", "ID", "TITLE", "YEAR", "RATE")
	fmt.Println("───────────┼────────────────────────────────────────────┼──────┼──────")

	for _, m := range p.Results {
		title := m.Title
		if len(title) > 42 {
			title = title[:39] + "..."
		}
		year := m.Year()
		yearStr := "    "
		if year > 0 {
			yearStr = fmt.Sprintf("%d", year)
		}
		fmt.Printf("  %8d │ %-42s │ %4s │ %4.1f\n", m.ID, title, yearStr, m.VoteAverage)
	}
}
