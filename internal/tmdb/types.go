// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie represents TMDB movie metadata. List endpoints return a trimmed
// form (GenreIDs instead of Genres, no Runtime); the detail endpoint fills
// everything in.
type Movie struct {
	ID           int64   `json:"id"`
	IMDBID       string  `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"` // "2024-03-01"
	PosterPath   string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Runtime      int     `json:"runtime,omitempty"` // minutes
	Genres       []Genre `json:"genres,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// MoviePage is one page of a paginated movie listing.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credits holds the cast and crew of a movie.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is one billed actor.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is one crew credit (director, writer, ...).
type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// genreList is the envelope of /genre/movie/list.
type genreList struct {
	Genres []Genre `json:"genres"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m *Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + m.PosterPath
}

// Director returns the name of the first crew member credited with the
// Director job, or "" if none is listed.
func (c *Credits) Director() string {
	for _, member := range c.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return ""
}
