package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show movie details",
	Long: `Show movie details.

Examples:
  cinefeed movie 603
  cinefeed movie 603 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runMovieCmd,
}

var creditsCmd = &cobra.Command{
	Use:   "credits <id>",
	Short: "Show movie cast and crew",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreditsCmd,
}

var similarCmd = &cobra.Command{
	Use:   "similar <id>",
	Short: "List movies similar to a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilarCmd,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <id>",
	Short: "List recommendations for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecommendCmd,
}

func init() {
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(creditsCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(recommendCmd)
	similarCmd.Flags().Int("page", 1, "Result page")
	recommendCmd.Flags().Int("page", 1, "Result page")
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

func runMovieCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	movie, err := client.MovieDetails(id)
	if err != nil {
		return fmt.Errorf("movie lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(movie)
		return nil
	}

	fmt.Printf("%s", movie.Title)
	if year := movie.Year(); year > 0 {
		fmt.Printf(" (%d)", year)
	}
	fmt.Println()
	if len(movie.Genres) > 0 {
		names := make([]string, len(movie.Genres))
		for i, g := range movie.Genres {
			names[i] = g.Name
		}
		fmt.Printf("Genres:  %s\n", strings.Join(names, ", "))
	}
	if movie.Runtime > 0 {
		fmt.Printf("Runtime: %dm\n", movie.Runtime)
	}
	fmt.Printf("Rating:  %.1f (%d votes)\n", movie.VoteAverage, movie.VoteCount)
	if movie.Overview != "" {
		fmt.Printf("\n%s\n", movie.Overview)
	}
	return nil
}

func runCreditsCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	credits, err := client.MovieCredits(id)
	if err != nil {
		return fmt.Errorf("credits lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(credits)
		return nil
	}

	if director := credits.Director(); director != "" {
		fmt.Printf("Director: %s\n\n", director)
	}
	if len(credits.Cast) == 0 {
		fmt.Println("No cast listed")
		return nil
	}
	fmt.Println("Cast:")
	for i, member := range credits.Cast {
		if i >= 15 {
			fmt.Printf("  ... and %d more\n", len(credits.Cast)-i)
			break
		}
		fmt.Printf("  %-28s %s\n", member.Name, member.Character)
	}
	return nil
}

func runSimilarCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")

	client := NewClient(serverURL)
	result, err := client.SimilarMovies(id, page)
	if err != nil {
		return fmt.Errorf("similar lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}
	printMoviePage(result)
	return nil
}

func runRecommendCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")

	client := NewClient(serverURL)
	result, err := client.Recommendations(id, page)
	if err != nil {
		return fmt.Errorf("recommendations lookup failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}
	printMoviePage(result)
	return nil
}
