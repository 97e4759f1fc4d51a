package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"

// ErrNotFound is returned when a movie doesn't exist in TMDB.
var ErrNotFound = errors.New("movie not found")

// Client is a TMDB API client. It performs no caching or retries of its
// own; callers that want cached reads go through the movies service.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the language parameter sent on every request
// (e.g. "en-US").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PopularMovies fetches one page of the popular movies listing.
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	var out MoviePage
	if err := c.getJSON(ctx, "/3/movie/popular", pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails fetches full movie metadata by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*Movie, error) {
	var out Movie
	path := fmt.Sprintf("/3/movie/%d", movieID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieCredits fetches the cast and crew of a movie.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	var out Credits
	path := fmt.Sprintf("/3/movie/%d/credits", movieID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMovies runs a full-text movie search. The query is sent as typed;
// cache-level normalization is the movies service's concern.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	q := pageQuery(page)
	q.Set("query", query)
	var out MoviePage
	if err := c.getJSON(ctx, "/3/search/movie", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres fetches the global movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out genreList
	if err := c.getJSON(ctx, "/3/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// MoviesByGenre fetches one page of movies in a genre, most popular first.
func (c *Client) MoviesByGenre(ctx context.Context, genreID, page int) (*MoviePage, error) {
	q := pageQuery(page)
	q.Set("with_genres", strconv.Itoa(genreID))
	q.Set("sort_by", "popularity.desc")
	var out MoviePage
	if err := c.getJSON(ctx, "/3/discover/movie", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimilarMovies fetches one page of movies similar to the given one.
func (c *Client) SimilarMovies(ctx context.Context, movieID int64, page int) (*MoviePage, error) {
	var out MoviePage
	path := fmt.Sprintf("/3/movie/%d/similar", movieID)
	if err := c.getJSON(ctx, path, pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieRecommendations fetches one page of recommendations for a movie.
func (c *Client) MovieRecommendations(ctx context.Context, movieID int64, page int) (*MoviePage, error) {
	var out MoviePage
	path := fmt.Sprintf("/3/movie/%d/recommendations", movieID)
	if err := c.getJSON(ctx, path, pageQuery(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

// getJSON performs a GET against the TMDB API and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
