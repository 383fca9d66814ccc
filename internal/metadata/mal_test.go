package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestParseAnimeSeries(t *testing.T) {
	a, err := ParseAnime(readFixture(t, "anime_16498.html"))
	if err != nil {
		t.Fatalf("ParseAnime() error = %v", err)
	}
	want := Anime{
		Title:        "Shingeki no Kyojin",
		TitleEnglish: "Attack on Titan",
		Type:         "TV",
		Episodes:     25,
		Aired:        "Apr 7, 2013 to Sep 29, 2013",
		Premiered:    "Spring 2013",
		Duration:     "24 min. per ep.",
		Score:        8.54,
		Studios:      []string{"Wit Studio"},
		Genres:       []string{"Action", "Drama", "Suspense"},
		ImageURL:     "https://cdn.myanimelist.net/images/anime/10/47347.jpg",
	}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("ParseAnime() =\n%+v\nwant\n%+v", a, want)
	}

	p := a.Poster()
	if p.Info.Title != "Attack on Titan" {
		t.Errorf("title = %q", p.Info.Title)
	}
	if p.Info.Subtitle != "Spring 2013 • 25 Episodes" {
		t.Errorf("subtitle = %q", p.Info.Subtitle)
	}
	if p.Info.Score != "85%" {
		t.Errorf("score = %q", p.Info.Score)
	}
	if p.PosterURL != want.ImageURL || p.BackdropURL != "" {
		t.Errorf("urls = %q, %q", p.PosterURL, p.BackdropURL)
	}
}

func TestParseAnimeMovie(t *testing.T) {
	a, err := ParseAnime(readFixture(t, "anime_32281.html"))
	if err != nil {
		t.Fatalf("ParseAnime() error = %v", err)
	}
	if a.Premiered != "" || a.Score != 0 {
		t.Errorf("placeholders kept: premiered=%q score=%v", a.Premiered, a.Score)
	}
	if a.ImageURL != "https://cdn.myanimelist.net/images/anime/5/87048.jpg" {
		t.Errorf("og:image fallback = %q", a.ImageURL)
	}
	if want := []string{"Drama", "Romance"}; !reflect.DeepEqual(a.Genres, want) {
		t.Errorf("genres = %v, want %v", a.Genres, want)
	}

	p := a.Poster()
	if p.Info.Title != "Kimi no Na wa." {
		t.Errorf("title = %q", p.Info.Title)
	}
	if p.Info.Subtitle != "Movie • 2016 • 1 hr. 46 min." {
		t.Errorf("subtitle = %q", p.Info.Subtitle)
	}
	if p.Info.Score != "0%" {
		t.Errorf("score = %q", p.Info.Score)
	}
}

func TestParseAnimeNoTitle(t *testing.T) {
	if _, err := ParseAnime([]byte("<html><body>Not found</body></html>")); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ParseAnime(empty page) error = %v", err)
	}
}

func TestAnimeSubtitle(t *testing.T) {
	tests := []struct {
		a    Anime
		want string
	}{
		{Anime{Type: "TV", Episodes: 12, Premiered: "Fall 2020"}, "Fall 2020 • 12 Episodes"},
		{Anime{Type: "ONA"}, "ONA"},
		{Anime{}, "Anime"},
		{Anime{Type: "Movie"}, "Movie"},
		{Anime{Type: "Movie", Aired: "Jul 16, 1988", Duration: "2 hr. 4 min."}, "Movie • 1988 • 2 hr. 4 min."},
	}
	for _, tt := range tests {
		if got := tt.a.Subtitle(); got != tt.want {
			t.Errorf("Subtitle(%+v) = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestMALAnime(t *testing.T) {
	page := readFixture(t, "anime_16498.html")
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/anime/16498" {
			http.NotFound(w, r)
			return
		}
		w.Write(page)
	}))
	defer srv.Close()

	cache := newMapCache()
	m := NewMAL(MALConfig{BaseURL: srv.URL}, srv.Client(), cache, nil)

	for i := 0; i < 2; i++ {
		p, err := m.Anime(context.Background(), 16498)
		if err != nil {
			t.Fatalf("Anime() error = %v", err)
		}
		if p.Info.Title != "Attack on Titan" {
			t.Errorf("title = %q", p.Info.Title)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1 with a cache", n)
	}

	if _, err := m.Anime(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Anime(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMALPageTooLarge(t *testing.T) {
	page := readFixture(t, "anime_16498.html")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(page)
	}))
	defer srv.Close()

	m := NewMAL(MALConfig{BaseURL: srv.URL}, srv.Client(), nil, nil)
	m.maxBody = int64(len(page) - 1)
	if _, err := m.Anime(context.Background(), 16498); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Anime(oversized page) error = %v, want ErrUnavailable", err)
	}

	m.maxBody = int64(len(page))
	if _, err := m.Anime(context.Background(), 16498); err != nil {
		t.Errorf("Anime(page at limit) error = %v", err)
	}
}
