package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinefeed/cinefeed/internal/cache"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

// Client wraps HTTP calls to the cinefeed daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new cinefeed API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) send(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Catalog calls

func (c *Client) PopularMovies(page int) (*tmdb.MoviePage, error) {
	var out tmdb.MoviePage
	err := c.get(fmt.Sprintf("/api/v1/movies/popular?page=%d", page), &out)
	return &out, err
}

func (c *Client) MovieDetails(id int64) (*tmdb.Movie, error) {
	var out tmdb.Movie
	err := c.get(fmt.Sprintf("/api/v1/movies/%d", id), &out)
	return &out, err
}

func (c *Client) MovieCredits(id int64) (*tmdb.Credits, error) {
	var out tmdb.Credits
	err := c.get(fmt.Sprintf("/api/v1/movies/%d/credits", id), &out)
	return &out, err
}

func (c *Client) SimilarMovies(id int64, page int) (*tmdb.MoviePage, error) {
	var out tmdb.MoviePage
	err := c.get(fmt.Sprintf("/api/v1/movies/%d/similar?page=%d", id, page), &out)
	return &out, err
}

func (c *Client) Recommendations(id int64, page int) (*tmdb.MoviePage, error) {
	var out tmdb.MoviePage
	err := c.get(fmt.Sprintf("/api/v1/movies/%d/recommendations?page=%d", id, page), &out)
	return &out, err
}

func (c *Client) Search(query string, page int) (*tmdb.MoviePage, error) {
	var out tmdb.MoviePage
	path := "/api/v1/search?query=" + url.QueryEscape(query) + "&page=" + strconv.Itoa(page)
	err := c.get(path, &out)
	return &out, err
}

func (c *Client) Genres() ([]tmdb.Genre, error) {
	var out []tmdb.Genre
	err := c.get("/api/v1/genres", &out)
	return out, err
}

func (c *Client) ResolveGenre(name string) (*tmdb.Genre, error) {
	var out tmdb.Genre
	err := c.get("/api/v1/genres/resolve?name="+url.QueryEscape(name), &out)
	return &out, err
}

func (c *Client) MoviesByGenre(genreID, page int) (*tmdb.MoviePage, error) {
	var out tmdb.MoviePage
	err := c.get(fmt.Sprintf("/api/v1/genres/%d/movies?page=%d", genreID, page), &out)
	return &out, err
}

// Cache administration calls

func (c *Client) CacheStats() (*cache.Stats, error) {
	var out cache.Stats
	err := c.get("/api/v1/cache/stats", &out)
	return &out, err
}

func (c *Client) ResetCacheStats() error {
	return c.send(http.MethodPost, "/api/v1/cache/stats/reset", nil, nil)
}

func (c *Client) ClearCache() error {
	return c.send(http.MethodDelete, "/api/v1/cache", nil, nil)
}

type clearedResponse struct {
	Removed int `json:"removed"`
}

func (c *Client) ClearMovieCache(id int64) error {
	return c.send(http.MethodDelete, fmt.Sprintf("/api/v1/cache/movies/%d", id), nil, nil)
}

func (c *Client) ClearSearchCache() (int, error) {
	var out clearedResponse
	err := c.send(http.MethodDelete, "/api/v1/cache/search", nil, &out)
	return out.Removed, err
}

func (c *Client) ClearPopularCache() (int, error) {
	var out clearedResponse
	err := c.send(http.MethodDelete, "/api/v1/cache/popular", nil, &out)
	return out.Removed, err
}

func (c *Client) ClearGenreCache() (int, error) {
	var out clearedResponse
	err := c.send(http.MethodDelete, "/api/v1/cache/genres", nil, &out)
	return out.Removed, err
}

type preloadRequest struct {
	Pages    []int   `json:"pages,omitempty"`
	MovieIDs []int64 `json:"movie_ids,omitempty"`
}

type preloadResponse struct {
	Warmed int    `json:"warmed"`
	Error  string `json:"error,omitempty"`
}

func (c *Client) Preload(pages []int, movieIDs []int64) (*preloadResponse, error) {
	var out preloadResponse
	err := c.send(http.MethodPost, "/api/v1/cache/preload", preloadRequest{Pages: pages, MovieIDs: movieIDs}, &out)
	return &out, err
}

func (c *Client) UpdateCacheTTL(ttls map[string]string) error {
	return c.send(http.MethodPut, "/api/v1/cache/ttl", ttls, nil)
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (c *Client) Status() (*statusResponse, error) {
	var out statusResponse
	err := c.get("/api/v1/status", &out)
	return &out, err
}
