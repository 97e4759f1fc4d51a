package movies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cinefeed/cinefeed/internal/tmdb"
)

// ErrGenreNotFound is returned when no catalog genre matches the given name
// closely enough.
var ErrGenreNotFound = errors.New("genre not found")

// genreMatchThreshold is the minimum Jaro-Winkler similarity for a match.
// "sci fi" vs "science fiction" lands around 0.87; unrelated names sit
// well below 0.8.
const genreMatchThreshold = 0.8

// ResolveGenre finds the catalog genre whose name best matches the given
// text, tolerating case, accents, and small typos. The genre list itself is
// read through the cache.
func (s *Service) ResolveGenre(ctx context.Context, name string) (*tmdb.Genre, error) {
	genres, err := s.GetGenres(ctx)
	if err != nil {
		return nil, err
	}

	want := cleanGenreName(name)
	if want == "" {
		return nil, fmt.Errorf("%w: %q", ErrGenreNotFound, name)
	}

	var best *tmdb.Genre
	var bestScore float64
	for i := range genres {
		score := float64(edlib.JaroWinklerSimilarity(want, cleanGenreName(genres[i].Name)))
		if score > bestScore {
			best = &genres[i]
			bestScore = score
		}
	}

	if best == nil || bestScore < genreMatchThreshold {
		return nil, fmt.Errorf("%w: %q", ErrGenreNotFound, name)
	}
	return best, nil
}

// cleanGenreName normalizes a genre name for matching purposes: lowercase,
// accents stripped, punctuation removed, whitespace collapsed.
func cleanGenreName(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
