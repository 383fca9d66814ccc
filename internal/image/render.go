package imagepkg

import (
	"image/color"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
)

// Renderer turns poster metadata and source art into a PNG card. It holds
// only read-only assets and is safe for concurrent use.
type Renderer struct {
	assets *Assets
	logger *log.Logger
	accent *color.NRGBA

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithAccent pins the accent colour instead of drawing it from the palette.
func WithAccent(c color.NRGBA) Option {
	return func(r *Renderer) { r.accent = &c }
}

// WithRand draws accent colours from rng, for reproducible output.
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) { r.rng = rng }
}

// NewRenderer creates a Renderer over loaded assets.
func NewRenderer(assets *Assets, opts ...Option) *Renderer {
	r := &Renderer{assets: assets}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Render draws one accent colour and renders the card with it.
func (r *Renderer) Render(info PosterInfo, src SourceImages, cfg Config) ([]byte, error) {
	return r.RenderWithAccent(info, src, cfg, r.pickAccent())
}

// RenderWithAccent renders the card using accent for the makers line and the
// score icon. Identical inputs give byte-identical PNGs.
func (r *Renderer) RenderWithAccent(info PosterInfo, src SourceImages, cfg Config, accent color.NRGBA) ([]byte, error) {
	if r.assets == nil || r.assets.Bold == nil || r.assets.Medium == nil || r.assets.Star == nil {
		return nil, newError(KindAssetMissing, "renderer has no assets")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := info.validate(); err != nil {
		return nil, err
	}

	accent.A = 255
	p := &pipeline{
		cfg:    cfg,
		info:   info,
		src:    src,
		accent: accent,
		assets: r.assets,
		logger: r.logger.With("title", info.Title),
	}
	return p.run()
}

func (r *Renderer) pickAccent() color.NRGBA {
	if r.accent != nil {
		return *r.accent
	}
	if r.rng == nil {
		return PickAccent(nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return PickAccent(r.rng)
}
