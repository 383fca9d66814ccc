package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/util"
)

const DefaultMALBaseURL = "https://myanimelist.net"

// MALConfig configures the MyAnimeList scraper.
type MALConfig struct {
	BaseURL string `toml:"base_url"`
}

// MAL scrapes anime pages from MyAnimeList. Fetch and parse are separate so
// ParseAnime stays a pure function of the page.
type MAL struct {
	cfg    MALConfig
	http   *http.Client
	cache  Cache
	logger *log.Logger

	maxBody int64
}

// NewMAL creates a MyAnimeList scraper.
func NewMAL(cfg MALConfig, client *http.Client, cache Cache, logger *log.Logger) *MAL {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMALBaseURL
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
	return &MAL{cfg: cfg, http: client, cache: cache, logger: logger, maxBody: util.MaxBody}
}

// Anime is the subset of a MyAnimeList entry the card uses. Unknown fields
// are empty or zero.
type Anime struct {
	Title        string
	TitleEnglish string
	Type         string
	Episodes     int
	Aired        string
	Premiered    string
	Duration     string
	Score        float64
	Studios      []string
	Genres       []string
	ImageURL     string
}

// Anime returns the card for a MyAnimeList anime id.
func (m *MAL) Anime(ctx context.Context, id int) (Poster, error) {
	var p Poster
	err := Cached(ctx, m.cache, fmt.Sprintf("mal:anime:%d", id), &p, func() error {
		page, err := m.fetch(ctx, fmt.Sprintf("%s/anime/%d", strings.TrimRight(m.cfg.BaseURL, "/"), id))
		if err != nil {
			return err
		}
		a, err := ParseAnime(page)
		if err != nil {
			return err
		}
		p = a.Poster()
		return nil
	})
	return p, err
}

func (m *MAL) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}
	m.logger.Debug("mal", "url", u)
	b, err := util.ReadBody(resp.Body, m.maxBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return b, nil
}

// ParseAnime reads an anime detail page.
func ParseAnime(page []byte) (Anime, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return Anime{}, fmt.Errorf("%w: parse page: %v", ErrUnavailable, err)
	}

	var a Anime
	a.Title = normSpace(doc.Find("h1.title-name").First().Text())
	a.TitleEnglish = normSpace(doc.Find("p.title-english").First().Text())
	if a.Title == "" {
		return Anime{}, fmt.Errorf("%w: page has no title", ErrUnavailable)
	}

	img := doc.Find("img[itemprop=image]").First()
	a.ImageURL = img.AttrOr("data-src", img.AttrOr("src", ""))
	if a.ImageURL == "" {
		a.ImageURL = doc.Find(`meta[property="og:image"]`).AttrOr("content", "")
	}

	a.Score, _ = strconv.ParseFloat(normSpace(doc.Find("[itemprop=ratingValue]").First().Text()), 64)

	doc.Find("div.spaceit_pad").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSuffix(normSpace(s.Find("span.dark_text").First().Text()), ":")
		value := sidebarValue(s)
		switch label {
		case "Type":
			a.Type = value
		case "Episodes":
			a.Episodes, _ = strconv.Atoi(value)
		case "Aired":
			a.Aired = value
		case "Premiered":
			a.Premiered = value
		case "Duration":
			a.Duration = value
		case "Studios":
			a.Studios = links(s)
		case "Genres", "Genre":
			a.Genres = genres(s)
		}
	})
	return a, nil
}

// Poster maps the entry to a card, preferring the English title.
func (a Anime) Poster() Poster {
	title := a.TitleEnglish
	if title == "" {
		title = a.Title
	}
	score := "0%"
	if a.Score > 0 {
		score = FormatScore(a.Score)
	}
	return Poster{
		Info: imagepkg.PosterInfo{
			Title:    title,
			Subtitle: a.Subtitle(),
			Makers:   a.Studios,
			Score:    score,
			Tags:     a.Genres,
		},
		PosterURL: a.ImageURL,
	}
}

// Subtitle is "Movie • 2016 • 1 hr. 46 min." for films and
// "Spring 2013 • 25 Episodes" otherwise.
func (a Anime) Subtitle() string {
	if a.Type == "Movie" {
		parts := []string{"Movie"}
		if a.Aired != "" {
			i := strings.LastIndex(a.Aired, ",")
			parts = append(parts, strings.TrimSpace(a.Aired[i+1:]))
		}
		if a.Duration != "" {
			parts = append(parts, a.Duration)
		}
		return strings.Join(parts, " • ")
	}

	var b strings.Builder
	if a.Premiered != "" {
		b.WriteString(a.Premiered + " • ")
	}
	switch {
	case a.Episodes > 0:
		fmt.Fprintf(&b, "%d Episodes", a.Episodes)
	case a.Type != "":
		b.WriteString(a.Type)
	default:
		b.WriteString("Anime")
	}
	return b.String()
}

// sidebarValue returns the text after the label, with placeholder values
// such as "?" and "Unknown" mapped to "".
func sidebarValue(s *goquery.Selection) string {
	label := s.Find("span.dark_text").First().Text()
	v := normSpace(strings.Replace(s.Text(), label, "", 1))
	if isPlaceholder(v) {
		return ""
	}
	return v
}

func isPlaceholder(v string) bool {
	switch strings.ToLower(v) {
	case "", "?", "unknown", "n/a", "none found", "none found, add some", "not available":
		return true
	}
	return false
}

func links(s *goquery.Selection) []string {
	var out []string
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		if v := normSpace(a.Text()); !isPlaceholder(v) {
			out = append(out, v)
		}
	})
	return out
}

func genres(s *goquery.Selection) []string {
	var out []string
	s.Find("span[itemprop=genre]").Each(func(_ int, g *goquery.Selection) {
		if v := normSpace(g.Text()); v != "" {
			out = append(out, v)
		}
	})
	if len(out) == 0 {
		return links(s)
	}
	return out
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
