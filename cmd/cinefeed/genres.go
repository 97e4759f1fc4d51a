package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres [name]...",
	Short: "List genres or browse movies by genre",
	Long: `List genres, or browse movies in a genre by name.

Genre names are matched fuzzily, so "sci-fi" finds Science Fiction.

Examples:
  cinefeed genres
  cinefeed genres action
  cinefeed genres sci-fi --page 2`,
	RunE: runGenresCmd,
}

func init() {
	rootCmd.AddCommand(genresCmd)
	genresCmd.Flags().Int("page", 1, "Result page")
}

func runGenresCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if len(args) == 0 {
		genres, err := client.Genres()
		if err != nil {
			return fmt.Errorf("genres failed: %w", err)
		}
		if jsonOutput {
			printJSON(genres)
			return nil
		}
		for _, g := range genres {
			fmt.Printf("  %5d  %s\n", g.ID, g.Name)
		}
		return nil
	}

	name := strings.Join(args, " ")
	genre, err := client.ResolveGenre(name)
	if err != nil {
		return fmt.Errorf("no genre matching %q: %w", name, err)
	}

	page, _ := cmd.Flags().GetInt("page")
	result, err := client.MoviesByGenre(genre.ID, page)
	if err != nil {
		return fmt.Errorf("genre browse failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("%s movies:\n\n", genre.Name)
	printMoviePage(result)
	return nil
}
