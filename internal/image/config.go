package imagepkg

import "strings"

// Config is the fixed layout of one render. It is passed by value and never
// mutated by the pipeline.
type Config struct {
	CanvasWidth  int `toml:"canvas_width" json:"canvas_width"`
	CanvasHeight int `toml:"canvas_height" json:"canvas_height"`
	Offset       int `toml:"offset" json:"offset"`
	CutoffWidth  int `toml:"cutoff_width" json:"cutoff_width"`
}

// DefaultConfig returns the 1200x628 social card layout.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  1200,
		CanvasHeight: 628,
		Offset:       50,
		CutoffWidth:  444,
	}
}

// LeftWidth is the width of the blended backdrop panel, including the
// diagonal overlap onto the poster.
func (c Config) LeftWidth() int {
	return c.CanvasWidth - c.CutoffWidth + c.Offset
}

// Validate checks the layout invariants.
func (c Config) Validate() error {
	switch {
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return newError(KindInvalidInfo, "canvas must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	case c.Offset < 0:
		return newError(KindInvalidInfo, "offset must not be negative, got %d", c.Offset)
	case c.CutoffWidth <= 0 || c.CutoffWidth >= c.CanvasWidth:
		return newError(KindInvalidInfo, "cutoff width %d must be in (0, %d)", c.CutoffWidth, c.CanvasWidth)
	case c.Offset >= c.CutoffWidth:
		return newError(KindInvalidInfo, "offset %d must be smaller than cutoff width %d", c.Offset, c.CutoffWidth)
	}
	return nil
}

// PosterInfo is the text content of a card.
type PosterInfo struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Makers   []string `json:"makers"`
	Score    string   `json:"score"`
	Tags     []string `json:"tags"`
}

func (p PosterInfo) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return newError(KindInvalidInfo, "title is empty")
	}
	return nil
}

// SourceImages holds the encoded source art for one render. An empty
// Backdrop means the poster is reused as background.
type SourceImages struct {
	Poster   []byte
	Backdrop []byte
}

func (s SourceImages) hasBackdrop() bool {
	return len(s.Backdrop) > 0
}
