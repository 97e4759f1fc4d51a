package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cinefeed/cinefeed/internal/api"
	"github.com/cinefeed/cinefeed/internal/cache"
	"github.com/cinefeed/cinefeed/internal/movies"
	"github.com/cinefeed/cinefeed/internal/movies/mocks"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

// newTestServer wires the API onto a movie service backed by a mock fetcher.
func newTestServer(t *testing.T) (*http.ServeMux, *mocks.MockFetcher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	c := cache.New(cache.Config{MaxEntries: 100, DefaultTTL: time.Hour})
	t.Cleanup(c.Destroy)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := movies.NewService(fetcher, c, logger)

	mux := http.NewServeMux()
	api.New(svc, "test").RegisterRoutes(mux)
	return mux, fetcher
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAPI_GetPopularMovies(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		PopularMovies(gomock.Any(), 2).
		Return(&tmdb.MoviePage{Page: 2, Results: []tmdb.Movie{{ID: 603, Title: "The Matrix"}}}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/popular?page=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var page tmdb.MoviePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "The Matrix", page.Results[0].Title)
}

func TestAPI_GetPopularMovies_SecondRequestServedFromCache(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		PopularMovies(gomock.Any(), 1).
		Return(&tmdb.MoviePage{Page: 1}, nil).
		Times(1)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/popular", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAPI_GetMovieDetails_NotFound(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		MovieDetails(gomock.Any(), int64(999)).
		Return(nil, tmdb.ErrNotFound)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestAPI_GetMovieDetails_InvalidID(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ID")
}

func TestAPI_GetMovieDetails_UpstreamError(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		MovieDetails(gomock.Any(), int64(550)).
		Return(nil, errors.New("connection refused"))

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/550", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_ERROR")
}

func TestAPI_Search(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		SearchMovies(gomock.Any(), "iron man", 1).
		Return(&tmdb.MoviePage{Page: 1, Results: []tmdb.Movie{{ID: 1726}}}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/search?query=iron+man", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Missing query is a client error, not an upstream call.
	rec = doRequest(t, mux, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_QUERY")
}

func TestAPI_ResolveGenre(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().
		Genres(gomock.Any()).
		Return([]tmdb.Genre{{ID: 878, Name: "Science Fiction"}}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/genres/resolve?name=sci-fi", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var genre tmdb.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &genre))
	assert.Equal(t, 878, genre.ID)

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/genres/resolve?name=zzzz", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CacheStatsAndClear(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().PopularMovies(gomock.Any(), 1).Return(&tmdb.MoviePage{}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/cache/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats cache.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(1), stats.Sets)

	rec = doRequest(t, mux, http.MethodDelete, "/api/v1/cache", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/cache/stats", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Zero(t, stats.Size)
}

func TestAPI_ResetCacheStats(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().PopularMovies(gomock.Any(), 1).Return(&tmdb.MoviePage{}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/movies/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/api/v1/cache/stats/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/v1/cache/stats", "")
	var stats cache.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Zero(t, stats.Sets, "lifetime counters reset")
	assert.Equal(t, 1, stats.Size, "entries survive a stats reset")
}

func TestAPI_ClearSearchCache(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().SearchMovies(gomock.Any(), "dune", 1).Return(&tmdb.MoviePage{}, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/search?query=dune", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodDelete, "/api/v1/cache/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed": 1}`, rec.Body.String())
}

func TestAPI_Preload_PartialFailure(t *testing.T) {
	mux, fetcher := newTestServer(t)

	fetcher.EXPECT().PopularMovies(gomock.Any(), 1).Return(&tmdb.MoviePage{}, nil)
	fetcher.EXPECT().PopularMovies(gomock.Any(), 2).Return(nil, errors.New("rate limited"))

	rec := doRequest(t, mux, http.MethodPost, "/api/v1/cache/preload", `{"pages":[1,2]}`)

	require.Equal(t, http.StatusOK, rec.Code, "partial preload failure is not an HTTP error")
	var resp struct {
		Warmed int    `json:"warmed"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Warmed)
	assert.Contains(t, resp.Error, "page 2")
}

func TestAPI_UpdateCacheTTL(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doRequest(t, mux, http.MethodPut, "/api/v1/cache/ttl", `{"search":"1m"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var policy movies.TTLPolicy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &policy))
	assert.Equal(t, time.Minute, policy.Search)
	assert.Equal(t, movies.DefaultTTLPolicy().Genres, policy.Genres, "unset fields untouched")

	rec = doRequest(t, mux, http.MethodPut, "/api/v1/cache/ttl", `{"search":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Status(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/v1/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, rec.Body.String())
}
