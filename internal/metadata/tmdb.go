package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	imagepkg "github.com/youruser/posterapp/internal/image"
)

const (
	DefaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	DefaultTMDBImageURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBConfig configures the TMDB client.
type TMDBConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
}

// TMDB reads TV, season and movie details from The Movie Database.
type TMDB struct {
	cfg    TMDBConfig
	http   *http.Client
	cache  Cache
	logger *log.Logger
}

// NewTMDB creates a TMDB client. Empty URLs fall back to the public API.
func NewTMDB(cfg TMDBConfig, client *http.Client, cache Cache, logger *log.Logger) *TMDB {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTMDBBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultTMDBImageURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if cache == nil {
		cache = NullCache{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TMDB{cfg: cfg, http: client, cache: cache, logger: logger}
}

type tmdbNamed struct {
	Name string `json:"name"`
}

type tmdbTV struct {
	Name             string      `json:"name"`
	Status           string      `json:"status"`
	NumberOfSeasons  int         `json:"number_of_seasons"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	CreatedBy        []tmdbNamed `json:"created_by"`
	VoteAverage      float64     `json:"vote_average"`
	Genres           []tmdbNamed `json:"genres"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
}

type tmdbSeason struct {
	Name        string            `json:"name"`
	Episodes    []json.RawMessage `json:"episodes"`
	VoteAverage float64           `json:"vote_average"`
	PosterPath  string            `json:"poster_path"`
}

type tmdbMovie struct {
	Title               string      `json:"title"`
	ReleaseDate         string      `json:"release_date"`
	Runtime             int         `json:"runtime"`
	ProductionCompanies []tmdbNamed `json:"production_companies"`
	VoteAverage         float64     `json:"vote_average"`
	Genres              []tmdbNamed `json:"genres"`
	PosterPath          string      `json:"poster_path"`
	BackdropPath        string      `json:"backdrop_path"`
}

// TV returns the card for a series.
func (t *TMDB) TV(ctx context.Context, id int) (Poster, error) {
	var p Poster
	err := Cached(ctx, t.cache, fmt.Sprintf("tmdb:tv:%d", id), &p, func() error {
		var tv tmdbTV
		if err := t.get(ctx, fmt.Sprintf("/tv/%d", id), &tv); err != nil {
			return err
		}
		p = Poster{
			Info: imagepkg.PosterInfo{
				Title:    tv.Name,
				Subtitle: fmt.Sprintf("%s • %d Seasons • %d Episodes", tv.Status, tv.NumberOfSeasons, tv.NumberOfEpisodes),
				Makers:   names(tv.CreatedBy),
				Score:    FormatScore(tv.VoteAverage),
				Tags:     SplitGenres(names(tv.Genres)),
			},
			PosterURL:   t.imageURL(tv.PosterPath),
			BackdropURL: t.imageURL(tv.BackdropPath),
		}
		return nil
	})
	return p, err
}

// Season returns the card for one season of a series. The series supplies
// the genres, the backdrop and, when the season has none, the poster; a
// failed series lookup only loses those.
func (t *TMDB) Season(ctx context.Context, id, season int) (Poster, error) {
	var p Poster
	err := Cached(ctx, t.cache, fmt.Sprintf("tmdb:tv:%d:season:%d", id, season), &p, func() error {
		var s tmdbSeason
		if err := t.get(ctx, fmt.Sprintf("/tv/%d/season/%d", id, season), &s); err != nil {
			return err
		}
		var tv tmdbTV
		if err := t.get(ctx, fmt.Sprintf("/tv/%d", id), &tv); err != nil {
			t.logger.Warn("series lookup failed", "tv", id, "err", err)
		}

		var makers []string
		if tv.Name != "" {
			makers = []string{tv.Name}
		}
		posterPath := s.PosterPath
		if posterPath == "" {
			posterPath = tv.PosterPath
		}
		p = Poster{
			Info: imagepkg.PosterInfo{
				Title:    s.Name,
				Subtitle: fmt.Sprintf("%d Episodes", len(s.Episodes)),
				Makers:   makers,
				Score:    FormatScore(s.VoteAverage),
				Tags:     SplitGenres(names(tv.Genres)),
			},
			PosterURL:   t.imageURL(posterPath),
			BackdropURL: t.imageURL(tv.BackdropPath),
		}
		return nil
	})
	return p, err
}

// Movie returns the card for a film.
func (t *TMDB) Movie(ctx context.Context, id int) (Poster, error) {
	var p Poster
	err := Cached(ctx, t.cache, fmt.Sprintf("tmdb:movie:%d", id), &p, func() error {
		var m tmdbMovie
		if err := t.get(ctx, fmt.Sprintf("/movie/%d", id), &m); err != nil {
			return err
		}
		p = Poster{
			Info: imagepkg.PosterInfo{
				Title:    m.Title,
				Subtitle: movieSubtitle(m.ReleaseDate, m.Runtime),
				Makers:   names(m.ProductionCompanies),
				Score:    FormatScore(m.VoteAverage),
				Tags:     SplitGenres(names(m.Genres)),
			},
			PosterURL:   t.imageURL(m.PosterPath),
			BackdropURL: t.imageURL(m.BackdropPath),
		}
		return nil
	})
	return p, err
}

func (t *TMDB) get(ctx context.Context, path string, v any) error {
	if t.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	u := strings.TrimRight(t.cfg.BaseURL, "/") + path + "?api_key=" + url.QueryEscape(t.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}
	t.logger.Debug("tmdb", "path", path)
	return nil
}

func (t *TMDB) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(t.cfg.ImageBaseURL, "/") + path
}

// movieSubtitle renders "2019 • 2 hour, 05 mins".
func movieSubtitle(releaseDate string, runtime int) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	return fmt.Sprintf("%s • %d hour, %02d mins", year, runtime/60, runtime%60)
}

func names(ns []tmdbNamed) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Name)
	}
	return out
}
