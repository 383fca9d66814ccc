package metadata

import (
	"errors"
	"fmt"
	"strings"

	imagepkg "github.com/youruser/posterapp/internal/image"
)

var (
	// ErrNotFound means the catalogue has no entry for the id.
	ErrNotFound = errors.New("metadata not found")
	// ErrUnavailable means the catalogue could not be reached or answered
	// with an error.
	ErrUnavailable = errors.New("metadata unavailable")
	// ErrMissingAPIKey means the TMDB API key is not configured.
	ErrMissingAPIKey = errors.New("tmdb api key not provided")
)

// Poster is everything needed to render one card.
type Poster struct {
	Info        imagepkg.PosterInfo `json:"info"`
	PosterURL   string              `json:"poster_url"`
	BackdropURL string              `json:"backdrop_url,omitempty"`
}

// FormatScore turns a 0-10 rating into a percentage like "82%".
func FormatScore(rating float64) string {
	return fmt.Sprintf("%d%%", int(rating*10))
}

// SplitGenres expands combined genre names such as "Action & Adventure".
func SplitGenres(names []string) []string {
	var out []string
	for _, n := range names {
		for _, part := range strings.Split(n, " & ") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func statusError(code int) error {
	if code == 404 {
		return ErrNotFound
	}
	return fmt.Errorf("%w: status %d", ErrUnavailable, code)
}
