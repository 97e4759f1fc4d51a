package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys_Fixed(t *testing.T) {
	assert.Equal(t, "popular_movies_page_2", PopularMoviesKey(2))
	assert.Equal(t, "movie_details_550", MovieDetailsKey(550))
	assert.Equal(t, "movie_credits_550", MovieCreditsKey(550))
	assert.Equal(t, "movie_genres", GenresKey)
	assert.Equal(t, "genre_878_movies_page_3", MoviesByGenreKey(878, 3))
	assert.Equal(t, "similar_movies_550_page_1", SimilarMoviesKey(550, 1))
	assert.Equal(t, "recommendations_550_page_1", RecommendationsKey(550, 1))
}

func TestSearchKey_Normalization(t *testing.T) {
	assert.Equal(t, "search_iron_man_page_2", SearchKey("iron man", 2))

	// Case and whitespace are normalized away.
	assert.Equal(t, SearchKey("iron man", 2), SearchKey("  Iron   Man  ", 2))
	assert.Equal(t, SearchKey("iron man", 2), SearchKey("IRON\tMAN", 2))

	// Different pages and different queries stay distinct.
	assert.NotEqual(t, SearchKey("iron man", 2), SearchKey("iron man", 3))
	assert.NotEqual(t, SearchKey("iron man", 2), SearchKey("iron-man", 2))
}

func TestSearchKey_Deterministic(t *testing.T) {
	// Pure function of its inputs: repeated calls are byte-identical.
	assert.Equal(t, SearchKey("The Matrix", 1), SearchKey("The Matrix", 1))
}
