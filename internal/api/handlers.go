package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/metadata"
)

// AnimeSource looks up anime by MyAnimeList id.
type AnimeSource interface {
	Anime(ctx context.Context, id int) (metadata.Poster, error)
}

// TMDBSource looks up series, seasons and films by TMDB id.
type TMDBSource interface {
	TV(ctx context.Context, id int) (metadata.Poster, error)
	Season(ctx context.Context, id, season int) (metadata.Poster, error)
	Movie(ctx context.Context, id int) (metadata.Poster, error)
}

// Handler serves poster cards. All fields are required except PublicURL.
type Handler struct {
	Anime    AnimeSource
	TMDB     TMDBSource
	Fetcher  imagepkg.Fetcher
	Renderer *imagepkg.Renderer
	Layout   imagepkg.Config
	Logger   *log.Logger

	// PublicURL is the externally visible base URL used in share QR codes.
	// When empty the request's host is used.
	PublicURL string
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"anime_path":     "/anime/{mal-anime-id}",
		"tv_path":        "/tv/{tmdb-tv-id}",
		"tv_season_path": "/tv/{tmdb-id}/season/{season-number}",
		"movie_path":     "/movie/{tmdb-movie-id}",
		"qr_path":        "/qr?path={poster-path}",
	})
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) animePoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "MAL anime id is incorrect", "malID": c.Param("id")})
		return
	}
	p, err := h.Anime.Anime(c.Request.Context(), id)
	h.respond(c, p, err)
}

func (h *Handler) tvPoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TMDB tv id is incorrect", "tmdbID": c.Param("id")})
		return
	}
	p, err := h.TMDB.TV(c.Request.Context(), id)
	h.respond(c, p, err)
}

func (h *Handler) seasonPoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TMDB tv id is incorrect", "tmdbID": c.Param("id")})
		return
	}
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil || season < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season number is incorrect", "season": c.Param("season")})
		return
	}
	p, err := h.TMDB.Season(c.Request.Context(), id, season)
	h.respond(c, p, err)
}

func (h *Handler) moviePoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TMDB movie id is incorrect", "tmdbID": c.Param("id")})
		return
	}
	p, err := h.TMDB.Movie(c.Request.Context(), id)
	h.respond(c, p, err)
}

// qrHandler returns a PNG QR code linking to the poster at ?path=.
func (h *Handler) qrHandler(c *gin.Context) {
	path := c.Query("path")
	if !isPosterPath(path) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path must be a poster path such as /movie/603"})
		return
	}
	size := 256
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			size = v
		}
	}

	b, err := imagepkg.GenerateQRPNG(h.baseURL(c)+path, size, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// respond fetches the art for p and renders it. Nothing is rendered unless
// both the metadata and the poster image are available.
func (h *Handler) respond(c *gin.Context, p metadata.Poster, err error) {
	logger := h.Logger.With("request_id", c.GetString(requestIDKey))
	if err != nil {
		status, msg := metadataStatus(err)
		logger.Warn("metadata lookup failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	src, err := imagepkg.FetchSources(c.Request.Context(), h.Fetcher, p.PosterURL, p.BackdropURL)
	if err != nil {
		logger.Warn("image fetch failed", "poster", p.PosterURL, "backdrop", p.BackdropURL, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not download poster images"})
		return
	}

	png, err := h.Renderer.Render(p.Info, src, h.Layout)
	if err != nil {
		logger.Error("render failed", "title", p.Info.Title, "err", err)
		status := http.StatusInternalServerError
		if imagepkg.IsKind(err, imagepkg.KindInvalidInfo) || imagepkg.IsKind(err, imagepkg.KindDecodeFailed) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": "Something went wrong while generating poster",
			"kind":  imagepkg.KindOf(err),
		})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func metadataStatus(err error) (int, string) {
	switch {
	case errors.Is(err, metadata.ErrMissingAPIKey):
		return http.StatusServiceUnavailable, "TMDB api key not provided"
	case errors.Is(err, metadata.ErrNotFound):
		return http.StatusNotFound, "no metadata found for this id"
	default:
		return http.StatusBadGateway, "metadata unavailable"
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isPosterPath(p string) bool {
	for _, prefix := range []string{"/anime/", "/tv/", "/movie/"} {
		if strings.HasPrefix(p, prefix) && len(p) > len(prefix) {
			return !strings.ContainsAny(p, "?#")
		}
	}
	return false
}

func (h *Handler) baseURL(c *gin.Context) string {
	if h.PublicURL != "" {
		return strings.TrimRight(h.PublicURL, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
