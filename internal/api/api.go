// Package api implements the catalog's REST surface.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cinefeed/cinefeed/internal/movies"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

// Server is the catalog API server.
type Server struct {
	movies  *movies.Service
	version string
}

// New creates a new API server on top of the movie service.
func New(svc *movies.Service, version string) *Server {
	return &Server{movies: svc, version: version}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Catalog
	mux.HandleFunc("GET /api/v1/movies/popular", s.getPopularMovies)
	mux.HandleFunc("GET /api/v1/movies/{id}", s.getMovieDetails)
	mux.HandleFunc("GET /api/v1/movies/{id}/credits", s.getMovieCredits)
	mux.HandleFunc("GET /api/v1/movies/{id}/similar", s.getSimilarMovies)
	mux.HandleFunc("GET /api/v1/movies/{id}/recommendations", s.getRecommendations)
	mux.HandleFunc("GET /api/v1/search", s.searchMovies)
	mux.HandleFunc("GET /api/v1/genres", s.listGenres)
	mux.HandleFunc("GET /api/v1/genres/resolve", s.resolveGenre)
	mux.HandleFunc("GET /api/v1/genres/{id}/movies", s.getMoviesByGenre)

	// Cache administration
	mux.HandleFunc("GET /api/v1/cache/stats", s.getCacheStats)
	mux.HandleFunc("POST /api/v1/cache/stats/reset", s.resetCacheStats)
	mux.HandleFunc("DELETE /api/v1/cache", s.clearCache)
	mux.HandleFunc("DELETE /api/v1/cache/movies/{id}", s.clearMovieCache)
	mux.HandleFunc("DELETE /api/v1/cache/search", s.clearSearchCache)
	mux.HandleFunc("DELETE /api/v1/cache/popular", s.clearPopularCache)
	mux.HandleFunc("DELETE /api/v1/cache/genres", s.clearGenreCache)
	mux.HandleFunc("POST /api/v1/cache/preload", s.preloadCache)
	mux.HandleFunc("PUT /api/v1/cache/ttl", s.updateCacheTTL)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeFetchError maps a movie-service error onto an HTTP response.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, tmdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
		return
	}
	writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// Handlers

func (s *Server) getPopularMovies(w http.ResponseWriter, r *http.Request) {
	page, err := s.movies.GetPopularMovies(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) getMovieDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	movie, err := s.movies.GetMovieDetails(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (s *Server) getMovieCredits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	credits, err := s.movies.GetMovieCredits(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (s *Server) getSimilarMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	page, err := s.movies.GetSimilarMovies(r.Context(), id, queryInt(r, "page", 1))
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) getRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	page, err := s.movies.GetMovieRecommendations(r.Context(), id, queryInt(r, "page", 1))
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query parameter is required")
		return
	}

	page, err := s.movies.SearchMovies(r.Context(), query, queryInt(r, "page", 1))
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.movies.GetGenres(r.Context())
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) resolveGenre(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "name parameter is required")
		return
	}

	genre, err := s.movies.ResolveGenre(r.Context(), name)
	if err != nil {
		if errors.Is(err, movies.ErrGenreNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genre)
}

func (s *Server) getMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	page, err := s.movies.GetMoviesByGenre(r.Context(), int(id), queryInt(r, "page", 1))
	if err != nil {
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) getCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.movies.CacheStats())
}

func (s *Server) resetCacheStats(w http.ResponseWriter, r *http.Request) {
	s.movies.ResetCacheStats()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	s.movies.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

type clearedResponse struct {
	Removed int `json:"removed"`
}

func (s *Server) clearMovieCache(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	s.movies.ClearMovieCache(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearSearchCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, clearedResponse{Removed: s.movies.ClearSearchCache()})
}

func (s *Server) clearPopularCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, clearedResponse{Removed: s.movies.ClearPopularMoviesCache()})
}

func (s *Server) clearGenreCache(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, clearedResponse{Removed: s.movies.ClearGenreCache()})
}

type preloadRequest struct {
	Pages    []int   `json:"pages"`
	MovieIDs []int64 `json:"movie_ids"`
}

type preloadResponse struct {
	Warmed int    `json:"warmed"`
	Error  string `json:"error,omitempty"`
}

// preloadCache warms the cache for popular pages and movie details. Partial
// failure still returns 200; the joined error text reports what failed.
func (s *Server) preloadCache(w http.ResponseWriter, r *http.Request) {
	var req preloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	resp := preloadResponse{Warmed: len(req.Pages) + len(req.MovieIDs)}
	var errs []error
	if err := s.movies.PreloadPopularMovies(r.Context(), req.Pages...); err != nil {
		errs = append(errs, err)
	}
	if err := s.movies.PreloadMovieDetails(r.Context(), req.MovieIDs...); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		resp.Error = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

// updateTTLRequest carries per-resource TTLs as duration strings ("10m").
type updateTTLRequest struct {
	PopularMovies   string `json:"popular_movies,omitempty"`
	MovieDetails    string `json:"movie_details,omitempty"`
	MovieCredits    string `json:"movie_credits,omitempty"`
	Search          string `json:"search,omitempty"`
	Genres          string `json:"genres,omitempty"`
	MoviesByGenre   string `json:"movies_by_genre,omitempty"`
	SimilarMovies   string `json:"similar_movies,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
}

func (s *Server) updateCacheTTL(w http.ResponseWriter, r *http.Request) {
	var req updateTTLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	var policy movies.TTLPolicy
	fields := []struct {
		raw string
		dst *time.Duration
	}{
		{req.PopularMovies, &policy.PopularMovies},
		{req.MovieDetails, &policy.MovieDetails},
		{req.MovieCredits, &policy.MovieCredits},
		{req.Search, &policy.Search},
		{req.Genres, &policy.Genres},
		{req.MoviesByGenre, &policy.MoviesByGenre},
		{req.SimilarMovies, &policy.SimilarMovies},
		{req.Recommendations, &policy.Recommendations},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_TTL", fmt.Sprintf("bad duration %q", f.raw))
			return
		}
		*f.dst = d
	}

	s.movies.UpdateCacheTTL(policy)
	writeJSON(w, http.StatusOK, s.movies.CacheTTLPolicy())
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: s.version})
}
