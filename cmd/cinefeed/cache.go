package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the server cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStatsCmd,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached responses",
	Long: `Clear cached responses.

With no flags the entire cache is cleared.

Examples:
  cinefeed cache clear
  cinefeed cache clear --search
  cinefeed cache clear --movie 603`,
	Args: cobra.NoArgs,
	RunE: runCacheClearCmd,
}

var cachePreloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Warm the cache with popular pages or movie details",
	Long: `Warm the cache with popular pages or movie details.

Examples:
  cinefeed cache preload --pages 1,2,3
  cinefeed cache preload --movies 603,550`,
	Args: cobra.NoArgs,
	RunE: runCachePreloadCmd,
}

var cacheTTLCmd = &cobra.Command{
	Use:   "ttl <resource>=<duration>...",
	Short: "Update cache TTLs per resource",
	Long: `Update cache TTLs per resource.

Examples:
  cinefeed cache ttl popular_movies=15m
  cinefeed cache ttl movie_details=1h movie_credits=1h`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCacheTTLCmd,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePreloadCmd)
	cacheCmd.AddCommand(cacheTTLCmd)

	cacheStatsCmd.Flags().Bool("reset", false, "Reset lifetime counters")

	cacheClearCmd.Flags().Bool("search", false, "Clear only search results")
	cacheClearCmd.Flags().Bool("popular", false, "Clear only popular pages")
	cacheClearCmd.Flags().Bool("genres", false, "Clear only genre data")
	cacheClearCmd.Flags().Int64("movie", 0, "Clear entries for one movie ID")

	cachePreloadCmd.Flags().IntSlice("pages", nil, "Popular pages to warm")
	cachePreloadCmd.Flags().Int64Slice("movies", nil, "Movie IDs to warm")
}

func runCacheStatsCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if err := client.ResetCacheStats(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Println("Cache stats reset")
		return nil
	}

	stats, err := client.CacheStats()
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if jsonOutput {
		printJSON(stats)
		return nil
	}

	fmt.Printf("Size:     %d entries\n", stats.Size)
	fmt.Printf("Hits:     %d\n", stats.Hits)
	fmt.Printf("Misses:   %d\n", stats.Misses)
	fmt.Printf("Hit rate: %.1f%%\n", stats.HitRate)
	fmt.Printf("Sets:     %d\n", stats.Sets)
	fmt.Printf("Deletes:  %d\n", stats.Deletes)
	fmt.Printf("Clears:   %d\n", stats.Clears)
	return nil
}

func runCacheClearCmd(cmd *cobra.Command, args []string) error {
	searchOnly, _ := cmd.Flags().GetBool("search")
	popularOnly, _ := cmd.Flags().GetBool("popular")
	genresOnly, _ := cmd.Flags().GetBool("genres")
	movieID, _ := cmd.Flags().GetInt64("movie")

	client := NewClient(serverURL)

	switch {
	case movieID > 0:
		if err := client.ClearMovieCache(movieID); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Printf("Cleared cache for movie %d\n", movieID)
	case searchOnly:
		removed, err := client.ClearSearchCache()
		if err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Printf("Cleared %d search entries\n", removed)
	case popularOnly:
		removed, err := client.ClearPopularCache()
		if err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Printf("Cleared %d popular entries\n", removed)
	case genresOnly:
		removed, err := client.ClearGenreCache()
		if err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Printf("Cleared %d genre entries\n", removed)
	default:
		if err := client.ClearCache(); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Println("Cache cleared")
	}
	return nil
}

func runCachePreloadCmd(cmd *cobra.Command, args []string) error {
	pages, _ := cmd.Flags().GetIntSlice("pages")
	movieIDs, _ := cmd.Flags().GetInt64Slice("movies")

	if len(pages) == 0 && len(movieIDs) == 0 {
		return fmt.Errorf("nothing to preload, pass --pages or --movies")
	}

	client := NewClient(serverURL)
	result, err := client.Preload(pages, movieIDs)
	if err != nil {
		return fmt.Errorf("preload failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("Warmed %d entries\n", result.Warmed)
	if result.Error != "" {
		fmt.Printf("Warnings: %s\n", result.Error)
	}
	return nil
}

func runCacheTTLCmd(cmd *cobra.Command, args []string) error {
	ttls := make(map[string]string, len(args))
	for _, arg := range args {
		resource, duration, ok := strings.Cut(arg, "=")
		if !ok || resource == "" || duration == "" {
			return fmt.Errorf("invalid ttl %q, expected <resource>=<duration>", arg)
		}
		ttls[resource] = duration
	}

	client := NewClient(serverURL)
	if err := client.UpdateCacheTTL(ttls); err != nil {
		return fmt.Errorf("ttl update failed: %w", err)
	}

	fmt.Printf("Updated %d TTLs\n", len(ttls))
	return nil
}
