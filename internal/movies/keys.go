package movies

import (
	"fmt"
	"strings"
)

// Cache keys are pure functions of a request's logical identity. They must
// stay byte-stable: IsCached and the scoped clears reconstruct the exact
// key a fetch would use, and entries written by earlier runs of the same
// scheme stay addressable.

// GenresKey is the constant key for the global genre list.
const GenresKey = "movie_genres"

// PopularMoviesKey returns the key for one page of the popular listing.
func PopularMoviesKey(page int) string {
	return fmt.Sprintf("popular_movies_page_%d", page)
}

// MovieDetailsKey returns the key for a movie's detail record.
func MovieDetailsKey(movieID int64) string {
	return fmt.Sprintf("movie_details_%d", movieID)
}

// MovieCreditsKey returns the key for a movie's cast and crew.
func MovieCreditsKey(movieID int64) string {
	return fmt.Sprintf("movie_credits_%d", movieID)
}

// SearchKey returns the key for one page of search results. The query is
// normalized first so that logically identical searches share an entry.
func SearchKey(query string, page int) string {
	return fmt.Sprintf("search_%s_page_%d", normalizeQuery(query), page)
}

// MoviesByGenreKey returns the key for one page of a genre listing.
func MoviesByGenreKey(genreID, page int) string {
	return fmt.Sprintf("genre_%d_movies_page_%d", genreID, page)
}

// SimilarMoviesKey returns the key for one page of similar movies.
func SimilarMoviesKey(movieID int64, page int) string {
	return fmt.Sprintf("similar_movies_%d_page_%d", movieID, page)
}

// RecommendationsKey returns the key for one page of recommendations.
func RecommendationsKey(movieID int64, page int) string {
	return fmt.Sprintf("recommendations_%d_page_%d", movieID, page)
}

// normalizeQuery lower-cases the query, trims surrounding whitespace, and
// collapses internal whitespace runs to single underscores.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), "_")
}

// Prefixes for the scoped cache clears.

func searchPrefix() string        { return "search_" }
func popularMoviesPrefix() string { return "popular_movies_page_" }
func genreMoviesPrefix() string   { return "genre_" }
func similarMoviesPrefix(id int64) string {
	return fmt.Sprintf("similar_movies_%d_page_", id)
}
func recommendationsPrefix(id int64) string {
	return fmt.Sprintf("recommendations_%d_page_", id)
}
